package printer

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	prevOut, prevColor := Stderr, color.NoColor
	Stderr, color.NoColor = buf, true
	t.Cleanup(func() { Stderr, color.NoColor = prevOut, prevColor })

	return buf
}

func TestError(t *testing.T) {
	t.Run("returns error with title", func(t *testing.T) {
		buf := capture(t)
		err := Error("Unknown algorithm", "No algorithm is registered as \"greedy\".", nil)
		require.EqualError(t, err, "Unknown algorithm")
		require.Equal(t, "Unknown algorithm\n\nNo algorithm is registered as \"greedy\".\n", buf.String())
	})

	t.Run("single suggestion is printed as is", func(t *testing.T) {
		buf := capture(t)
		err := Error("Bad input", "Row 1 is short.", []string{"Pad the row."})
		require.EqualError(t, err, "Bad input")
		require.Contains(t, buf.String(), "\nPad the row.\n")
		require.NotContains(t, buf.String(), "Either:")
	})

	t.Run("multiple suggestions are numbered", func(t *testing.T) {
		buf := capture(t)
		_ = Error("Bad input", "Row 1 is short.", []string{"Pad the row.", "Drop the agent."})
		require.Contains(t, buf.String(), "Either:\n  1. Pad the row.\n  2. Drop the agent.\n")
	})
}

func TestWarning(t *testing.T) {
	buf := capture(t)
	Warning("items left unassigned: %s\n", "{blue}")
	require.Equal(t, "⚠️  items left unassigned: {blue}\n", buf.String())

	buf.Reset()
	Warning("⚠️ already prefixed\n")
	require.Equal(t, "⚠️ already prefixed\n", buf.String())
}
