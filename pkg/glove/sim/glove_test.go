package sim

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

func readResponse(t *testing.T, g *Glove, n int) []byte {
	t.Helper()
	resp := make([]byte, 0, n)
	buf := make([]byte, n)
	deadline := time.Now().Add(time.Second)
	for len(resp) < n {
		require.True(t, time.Now().Before(deadline), "response timeout")
		read, err := g.Read(buf)
		require.NoError(t, err)
		resp = append(resp, buf[:read]...)
	}
	return resp
}

func TestGloveAppliesCommands(t *testing.T) {
	g := New()
	defer g.Close()

	msg, err := wire.Encode(wire.Command{Kind: wire.KindPinMode, Pins: []int{7}, Values: []int{wire.Output}})
	require.NoError(t, err)
	_, err = g.Write(msg)
	require.NoError(t, err)
	require.Equal(t, wire.Output, g.Mode(7))

	msg, err = wire.Encode(wire.Command{Kind: wire.KindDigitalWrite, Pins: []int{7}, Values: []int{wire.High}})
	require.NoError(t, err)
	_, err = g.Write(msg)
	require.NoError(t, err)
	require.Equal(t, wire.High, g.Level(7))
}

func TestGlovePartialWrites(t *testing.T) {
	g := New()
	defer g.Close()
	g.SetAnalog(2, 555)

	msg, err := wire.Encode(wire.Command{Kind: wire.KindAnalogRead, Pins: []int{2}})
	require.NoError(t, err)
	// deliver the message one byte per Write call
	for _, b := range msg {
		_, err = g.Write([]byte{b})
		require.NoError(t, err)
	}

	value, err := wire.ParseAnalog(readResponse(t, g, 2))
	require.NoError(t, err)
	require.Equal(t, 555, value)
}

func TestGloveRepliesInOrder(t *testing.T) {
	g := New()
	defer g.Close()
	g.SetDigital(7, wire.Low)
	g.SetDigital(8, wire.High)

	first, err := wire.Encode(wire.Command{Kind: wire.KindDigitalRead, Pins: []int{7}})
	require.NoError(t, err)
	second, err := wire.Encode(wire.Command{Kind: wire.KindDigitalRead, Pins: []int{8}})
	require.NoError(t, err)
	_, err = g.Write(append(append([]byte{}, first...), second...))
	require.NoError(t, err)

	resp := readResponse(t, g, 2)
	require.Equal(t, []byte{wire.Low, wire.High}, resp)
}

func TestGloveClose(t *testing.T) {
	g := New()
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	_, err := g.Write([]byte{1})
	require.Equal(t, ErrClosed, err)
	_, err = g.Read(make([]byte, 1))
	require.Equal(t, io.EOF, err)
}
