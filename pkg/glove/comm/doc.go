// Package comm implements request/response correlation for the glove link.
package comm

// The serial link is strictly ordered but carries no request
// identifier, so read responses are paired with requests purely by
// order: the oldest pending read owns the next response bytes. The
// Correlator keeps that FIFO queue and nothing outside this package
// can mutate it.
