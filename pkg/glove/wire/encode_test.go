package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		cmd  Command
	}{
		{"init motor", Command{Kind: KindInitMotor, Pins: []int{3, 5}}},
		{"activate motor", Command{Kind: KindActivateMotor, Pins: []int{3, 5}, Values: []int{128, 255}}},
		{"analog read", Command{Kind: KindAnalogRead, Pins: []int{2}}},
		{"digital read", Command{Kind: KindDigitalRead, Pins: []int{7}}},
		{"pin mode", Command{Kind: KindPinMode, Pins: []int{7, 8}, Values: []int{Input, Output}}},
		{"digital write", Command{Kind: KindDigitalWrite, Pins: []int{13}, Values: []int{High}}},
		{"analog write", Command{Kind: KindAnalogWrite, Pins: []int{9, 10, 11}, Values: []int{0, 127, 255}}},
		{
			"count escape",
			Command{
				Kind: KindInitMotor,
				Pins: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, err := Encode(tc.cmd)
			require.NoError(t, err)
			decoded, err := Decode(msg)
			require.NoError(t, err)
			require.Equal(t, tc.cmd.Kind, decoded.Kind)
			require.Equal(t, tc.cmd.Pins, decoded.Pins)
			require.Equal(t, tc.cmd.Values, decoded.Values)
		})
	}
}

func TestEncodeRejects(t *testing.T) {
	testCases := []struct {
		name string
		cmd  Command
	}{
		{"unknown kind", Command{Kind: Kind(0), Pins: []int{1}}},
		{"no pins", Command{Kind: KindDigitalWrite}},
		{"length mismatch", Command{Kind: KindDigitalWrite, Pins: []int{1, 2}, Values: []int{1}}},
		{"digital out of domain", Command{Kind: KindDigitalWrite, Pins: []int{1}, Values: []int{2}}},
		{"mode out of domain", Command{Kind: KindPinMode, Pins: []int{1}, Values: []int{7}}},
		{"analog out of range", Command{Kind: KindAnalogWrite, Pins: []int{1}, Values: []int{256}}},
		{"pin out of range", Command{Kind: KindDigitalRead, Pins: []int{300}}},
		{"multi-pin read", Command{Kind: KindAnalogRead, Pins: []int{1, 2}}},
		{"read with values", Command{Kind: KindDigitalRead, Pins: []int{1}, Values: []int{1}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.cmd)
			require.Error(t, err)
			var encErr *EncodeError
			require.ErrorAs(t, err, &encErr)
		})
	}
}

func TestDecodeNextPartial(t *testing.T) {
	msg, err := Encode(Command{Kind: KindActivateMotor, Pins: []int{3, 5}, Values: []int{128, 255}})
	require.NoError(t, err)

	var cmd Command
	for i := 0; i < len(msg); i++ {
		n, err := DecodeNext(msg[:i], &cmd)
		require.NoError(t, err)
		require.Zero(t, n, "message should be incomplete at %d bytes", i)
	}
	n, err := DecodeNext(msg, &cmd)
	require.NoError(t, err)
	require.Equal(t, len(msg), n)
	require.Equal(t, []int{3, 5}, cmd.Pins)
	require.Equal(t, []int{128, 255}, cmd.Values)
}

func TestDecodeNextConcatenated(t *testing.T) {
	first, err := Encode(Command{Kind: KindDigitalRead, Pins: []int{7}})
	require.NoError(t, err)
	second, err := Encode(Command{Kind: KindDigitalRead, Pins: []int{8}})
	require.NoError(t, err)
	buf := append(append([]byte{}, first...), second...)

	var cmd Command
	n, err := DecodeNext(buf, &cmd)
	require.NoError(t, err)
	require.Equal(t, len(first), n)
	require.Equal(t, []int{7}, cmd.Pins)

	n, err = DecodeNext(buf[n:], &cmd)
	require.NoError(t, err)
	require.Equal(t, len(second), n)
	require.Equal(t, []int{8}, cmd.Pins)
}

func TestResponseCodec(t *testing.T) {
	require.Equal(t, 2, ResponseLen(KindAnalogRead))
	require.Equal(t, 1, ResponseLen(KindDigitalRead))
	require.Zero(t, ResponseLen(KindDigitalWrite))

	value, err := ParseAnalog(AppendAnalog(nil, 731))
	require.NoError(t, err)
	require.Equal(t, 731, value)

	level, err := ParseDigital(AppendDigital(nil, High))
	require.NoError(t, err)
	require.Equal(t, High, level)

	_, err = ParseDigital([]byte{9})
	require.Error(t, err)
	_, err = ParseAnalog([]byte{1})
	require.Error(t, err)
}
