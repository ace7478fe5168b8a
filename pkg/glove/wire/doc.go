// Package wire defines the byte protocol spoken by the glove firmware.
package wire

// The firmware consumes self-contained command messages and, for read
// commands only, produces fixed-size responses with no header or
// correlation token. Responses are emitted strictly in the order the
// reads were received, which is what the host-side correlator relies on.
//
// Producer: host driver
// Consumer: glove firmware
