package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/glove.go/pkg/glove/wire"
)

func TestParsePins(t *testing.T) {
	pins, err := parsePins("3, 5,13")
	require.NoError(t, err)
	require.Equal(t, []int{3, 5, 13}, pins)

	_, err = parsePins("3,x")
	require.Error(t, err)
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("high,LOW,128,input,output")
	require.NoError(t, err)
	require.Equal(t, []int{wire.High, wire.Low, 128, wire.Input, wire.Output}, values)

	_, err = parseValues("maybe")
	require.Error(t, err)
}
