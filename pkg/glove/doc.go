// Package glove drives a wearable glove device over a serial link.
package glove

// The glove is a microcontroller with motors and analog/digital pins,
// reachable only through an ordered byte stream. This package exposes
// the motor and pin operations as request/response calls; the pairing
// of read responses to requests lives in the comm subpackage, the
// byte protocol in the wire subpackage.
