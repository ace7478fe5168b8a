package bridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTopic(t *testing.T) {
	testCases := []struct {
		topic   string
		pattern string
		match   bool
	}{
		{"glove/abc/meta", "glove/+/meta", true},
		{"glove/abc/meta", "glove/abc/meta", true},
		{"glove/abc/set/digital/7", "glove/abc/set/#", true},
		{"glove/abc/analog/2", "glove/+/digital/+", false},
		{"glove/abc", "glove/abc/meta", false},
	}
	for _, tc := range testCases {
		require.Equalf(t, tc.match, MatchTopic(tc.topic, tc.pattern),
			"MatchTopic(%q, %q)", tc.topic, tc.pattern)
	}
}

func TestQueueTopicPrefix(t *testing.T) {
	q, err := NewQueue("mqtt://127.0.0.1:1883/lab", "test")
	require.NoError(t, err)
	require.Equal(t, "lab", q.TopicPrefix)
	require.Equal(t, "lab/glove/abc/meta", q.Topic("glove/abc/meta"))
	require.Equal(t, "glove/abc/meta", q.Strip("lab/glove/abc/meta"))

	q, err = NewQueue("mqtt://127.0.0.1:1883", "test")
	require.NoError(t, err)
	require.Empty(t, q.TopicPrefix)
	require.Equal(t, "glove/abc/meta", q.Topic("glove/abc/meta"))
}

func TestParseIntList(t *testing.T) {
	pins, err := parseIntList("3, 5,13")
	require.NoError(t, err)
	require.Equal(t, []int{3, 5, 13}, pins)

	_, err = parseIntList("3,x")
	require.Error(t, err)
}
