// Package transport provides byte-stream connections to glove devices.
package transport

// All transports deliver the same contract: an ordered byte stream
// with no framing and no correlation token. Serial is the native one;
// TCP and websocket carry the identical protocol for remote or
// simulated gloves.
