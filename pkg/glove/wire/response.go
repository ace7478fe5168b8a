package wire

// Device responses carry no header: the host knows which read is
// oldest, and each read kind has a fixed response size. Digital reads
// reply with one byte (0 or 1), analog reads with a big-endian 16-bit
// value.

// ResponseLen returns the response size in bytes for a read kind,
// or 0 for kinds that produce no response.
func ResponseLen(k Kind) int {
	switch k {
	case KindDigitalRead:
		return 1
	case KindAnalogRead:
		return 2
	}
	return 0
}

// ParseDigital parses a digital read response.
func ParseDigital(raw []byte) (int, error) {
	if len(raw) != 1 {
		return 0, &EncodeError{Reason: "digital response must be one byte"}
	}
	if raw[0] > High {
		return 0, &EncodeError{Reason: "digital response not LOW/HIGH"}
	}
	return int(raw[0]), nil
}

// ParseAnalog parses an analog read response.
func ParseAnalog(raw []byte) (int, error) {
	if len(raw) != 2 {
		return 0, &EncodeError{Reason: "analog response must be two bytes"}
	}
	return int(raw[0])<<8 | int(raw[1]), nil
}

// AppendDigital appends a digital read response to buf.
func AppendDigital(buf []byte, level int) []byte {
	if level != Low {
		level = High
	}
	return append(buf, byte(level))
}

// AppendAnalog appends an analog read response to buf.
func AppendAnalog(buf []byte, value int) []byte {
	return append(buf, byte(value>>8), byte(value))
}
