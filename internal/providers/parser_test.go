package providers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDetectionScoreReasonLine(t *testing.T) {
	score, reason, err := ParseDetection("SCORE:87; REASON:Consistent sentence length")
	require.NoError(t, err)
	require.Equal(t, 87, score)
	require.Equal(t, "Consistent sentence length", reason)
}

func TestParseDetectionStripsThinkBlocks(t *testing.T) {
	raw := "<think>the phrasing is very uniform</think>SCORE:92; REASON:Uniform phrasing"
	score, reason, err := ParseDetection(raw)
	require.NoError(t, err)
	require.Equal(t, 92, score)
	require.Equal(t, "Uniform phrasing", reason)
}

func TestParseDetectionJSONFallback(t *testing.T) {
	score, reason, err := ParseDetection(`{"score": 41, "reasoning": "mixed signals"}`)
	require.NoError(t, err)
	require.Equal(t, 41, score)
	require.Equal(t, "mixed signals", reason)
}

func TestParseDetectionBareNumber(t *testing.T) {
	score, reason, err := ParseDetection("I'd put this around 73 out of 100.")
	require.NoError(t, err)
	require.Equal(t, 73, score)
	require.NotEmpty(t, reason)
}

func TestParseDetectionClampsAndErrors(t *testing.T) {
	score, _, err := ParseDetection(`{"score": 100, "reasoning": "x"}`)
	require.NoError(t, err)
	require.Equal(t, 100, score)

	_, _, err = ParseDetection("no verdict here at all")
	require.Error(t, err)
}
