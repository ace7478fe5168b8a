package wire

import "fmt"

// Kind identifies the type of a device command.
type Kind byte

// Command kinds understood by the glove firmware.
const (
	KindInitMotor Kind = iota + 1
	KindActivateMotor
	KindAnalogRead
	KindDigitalRead
	KindPinMode
	KindDigitalWrite
	KindAnalogWrite
)

var kindNames = map[Kind]string{
	KindInitMotor:     "init-motor",
	KindActivateMotor: "activate-motor",
	KindAnalogRead:    "analog-read",
	KindDigitalRead:   "digital-read",
	KindPinMode:       "pin-mode",
	KindDigitalWrite:  "digital-write",
	KindAnalogWrite:   "analog-write",
}

// IsValid indicates the kind is a known command kind.
func (k Kind) IsValid() bool {
	return k >= KindInitMotor && k <= KindAnalogWrite
}

// IsRead indicates the command expects a response from the device.
func (k Kind) IsRead() bool {
	return k == KindAnalogRead || k == KindDigitalRead
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// Digital pin levels.
const (
	Low  = 0
	High = 1
)

// Pin modes.
const (
	Input  = 0
	Output = 1
)

// Command is a typed request to change or query device pin state.
// Pins and Values are parallel sequences for the kinds carrying both.
type Command struct {
	Kind   Kind
	Pins   []int
	Values []int
}

// Validate checks the command can be represented on the wire.
// Analog magnitudes are not range-checked beyond the byte domain;
// pin numbers are not checked against any board pinout.
func (c Command) Validate() error {
	if !c.Kind.IsValid() {
		return &EncodeError{Reason: fmt.Sprintf("unknown kind %d", byte(c.Kind))}
	}
	if len(c.Pins) == 0 {
		return &EncodeError{Reason: "no pins"}
	}
	if len(c.Pins) > 0xff {
		return &EncodeError{Reason: "too many pins"}
	}
	for _, pin := range c.Pins {
		if pin < 0 || pin > 0xff {
			return &EncodeError{Reason: fmt.Sprintf("pin %d out of range", pin)}
		}
	}
	switch c.Kind {
	case KindAnalogRead, KindDigitalRead:
		if len(c.Pins) != 1 {
			return &EncodeError{Reason: "read takes exactly one pin"}
		}
		if len(c.Values) != 0 {
			return &EncodeError{Reason: "read carries no values"}
		}
		return nil
	case KindInitMotor:
		if len(c.Values) != 0 {
			return &EncodeError{Reason: "init-motor carries no values"}
		}
		return nil
	}
	if len(c.Values) != len(c.Pins) {
		return &EncodeError{Reason: fmt.Sprintf("%d pins but %d values", len(c.Pins), len(c.Values))}
	}
	for _, v := range c.Values {
		switch c.Kind {
		case KindDigitalWrite:
			if v != Low && v != High {
				return &EncodeError{Reason: fmt.Sprintf("digital value %d not LOW/HIGH", v)}
			}
		case KindPinMode:
			if v != Input && v != Output {
				return &EncodeError{Reason: fmt.Sprintf("mode %d not INPUT/OUTPUT", v)}
			}
		default:
			if v < 0 || v > 0xff {
				return &EncodeError{Reason: fmt.Sprintf("value %d out of range", v)}
			}
		}
	}
	return nil
}

// EncodeError indicates a command cannot be encoded for the wire.
type EncodeError struct {
	Reason string
}

// Error implements error.
func (e *EncodeError) Error() string {
	return "encode: " + e.Reason
}
