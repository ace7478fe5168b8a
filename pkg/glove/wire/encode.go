package wire

// Wire format of a command message:
//
//	byte 0:  kind (low nibble) | pin count (high nibble, 0xf escapes)
//	byte 1:  pin count, only when the count nibble is 0xf
//	payload: pin bytes, or (pin, value) byte pairs for kinds carrying values
//
// The header packs the count the same way the packet code packs data
// length, so a message is self-contained without extra framing.

const countEscape = 0xf

// Encode produces the wire message for a command.
func Encode(cmd Command) ([]byte, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	paired := cmd.payloadPaired()
	size := 1 + len(cmd.Pins)
	if paired {
		size += len(cmd.Values)
	}
	count := len(cmd.Pins)
	if count >= countEscape {
		size++
	}
	msg := make([]byte, 0, size)
	if count >= countEscape {
		msg = append(msg, byte(cmd.Kind)|countEscape<<4, byte(count))
	} else {
		msg = append(msg, byte(cmd.Kind)|byte(count)<<4)
	}
	for i, pin := range cmd.Pins {
		msg = append(msg, byte(pin))
		if paired {
			msg = append(msg, byte(cmd.Values[i]))
		}
	}
	return msg, nil
}

// Decode reconstructs a command from a complete wire message.
// It is the device-side inverse of Encode, used by the simulator.
func Decode(msg []byte) (Command, error) {
	var cmd Command
	n, err := DecodeNext(msg, &cmd)
	if err != nil {
		return cmd, err
	}
	if n != len(msg) {
		return cmd, &EncodeError{Reason: "trailing bytes after message"}
	}
	return cmd, nil
}

// DecodeNext decodes the first complete message in buf into cmd and
// returns its length in bytes. It returns 0, nil when buf does not yet
// hold a complete message.
func DecodeNext(buf []byte, cmd *Command) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	kind := Kind(buf[0] & 0x0f)
	if !kind.IsValid() {
		return 0, &EncodeError{Reason: "bad kind nibble"}
	}
	count := int(buf[0] >> 4)
	payload := 1
	if count == countEscape {
		if len(buf) < 2 {
			return 0, nil
		}
		count = int(buf[1])
		payload = 2
	}
	if count == 0 {
		return 0, &EncodeError{Reason: "zero pin count"}
	}
	width := 1
	if kindPaired(kind) {
		width = 2
	}
	total := payload + count*width
	if len(buf) < total {
		return 0, nil
	}
	*cmd = Command{Kind: kind}
	for i := 0; i < count; i++ {
		cmd.Pins = append(cmd.Pins, int(buf[payload+i*width]))
		if width == 2 {
			cmd.Values = append(cmd.Values, int(buf[payload+i*width+1]))
		}
	}
	return total, nil
}

func (c Command) payloadPaired() bool {
	return kindPaired(c.Kind)
}

func kindPaired(k Kind) bool {
	switch k {
	case KindInitMotor, KindAnalogRead, KindDigitalRead:
		return false
	}
	return true
}
