package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fairalloc/internal/printer"
)

const coloursYAML = `
Ami:  {green: 8, red: 7, blue: 6, yellow: 5}
Tami: {green: 12, red: 8, blue: 4, yellow: 2}
`

type result struct {
	out, errOut string
	err         error
}

// run executes a fresh command tree with args. The printer's stderr is
// captured together with the command's own.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer

	prevErr, prevColor := printer.Stderr, color.NoColor
	printer.Stderr, color.NoColor = &errOut, true
	t.Cleanup(func() { printer.Stderr, color.NoColor = prevErr, prevColor })

	root := NewRootCommand()
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()

	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRoot_ShowsHelpWhenNoSubcommand(t *testing.T) {
	res := run(t, "")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Usage:")
	assert.Contains(t, res.out, "allocate")
}

func TestRoot_RejectsUnknownFlags(t *testing.T) {
	res := run(t, "", "--goal")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown flag")
}

func TestAlgorithms_ListsBuiltins(t *testing.T) {
	res := run(t, "", "algorithms")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "iterated_maximum_matching\n")
	assert.Contains(t, res.out, "round_robin (default)\n")
}

func TestAllocate_RoundRobin(t *testing.T) {
	path := writeFile(t, "colours.yaml", coloursYAML)

	res := run(t, "", "allocate", path)
	require.NoError(t, res.err)
	assert.Equal(t, "Ami gets {green,blue} with value 14.\nTami gets {red,yellow} with value 10.\n", res.out)
	assert.Empty(t, res.errOut)

	res = run(t, "", "allocate", path, "--order", "Tami,Ami", "--items", "green,red,blue")
	require.NoError(t, res.err)
	assert.Equal(t, "Ami gets {red} with value 7.\nTami gets {green,blue} with value 16.\n", res.out)
	assert.Empty(t, res.errOut, "excluded items are not reported as left over")
}

func TestAllocate_MatchingFromStdin(t *testing.T) {
	json := `{"Ami": {"green": 8, "red": 7, "blue": 6, "yellow": 5}, "Tami": {"green": 12, "red": 8, "blue": 4, "yellow": 2}}`

	res := run(t, json, "allocate", "-", "--algorithm", "iterated_maximum_matching", "--trace", "info")
	require.NoError(t, res.err)
	assert.Equal(t, "Ami gets {red,yellow} with value 12.\nTami gets {green,blue} with value 16.\n", res.out)
	assert.Contains(t, res.errOut, "round 1: [Ami:red=7 Tami:green=12]")
	assert.Contains(t, res.errOut, "round 2: [Ami:yellow=5 Tami:blue=4]")
}

func TestAllocate_PositionalAndAgentsSubset(t *testing.T) {
	path := writeFile(t, "matrix.yaml", "[[8, 7, 6, 5], [12, 8, 4, 2], [1, 1, 1, 1]]\n")

	res := run(t, "", "allocate", path, "--agents", "Agent #1,Agent #0")
	require.NoError(t, res.err)
	assert.Equal(t, "Agent #1 gets {0,2} with value 16.\nAgent #0 gets {1,3} with value 12.\n", res.out)
}

func TestAllocate_LeftoverWarning(t *testing.T) {
	path := writeFile(t, "negative.yaml", "a: {x: 1, y: -1}\n")

	res := run(t, "", "allocate", path, "-a", "iterated_maximum_matching", "--no-max-cardinality")
	require.NoError(t, res.err)
	assert.Equal(t, "a gets {x} with value 1.\n", res.out)
	assert.Contains(t, res.errOut, "no agent accepts the remaining items {y}")
	assert.Contains(t, res.errOut, "1 item(s) left unassigned: {y}")

	res = run(t, "", "allocate", path, "-a", "iterated_maximum_matching", "--no-max-cardinality", "--trace", "off")
	require.NoError(t, res.err)
	assert.NotContains(t, res.errOut, "no agent accepts")
	assert.Contains(t, res.errOut, "left unassigned")
}

func TestAllocate_Environment(t *testing.T) {
	path := writeFile(t, "colours.yaml", coloursYAML)
	t.Setenv("FAIRALLOC_ORDER", "Tami,Ami")
	t.Setenv("FAIRALLOC_ITEMS", "green,red,blue")

	res := run(t, "", "allocate", path)
	require.NoError(t, res.err)
	assert.Equal(t, "Ami gets {red} with value 7.\nTami gets {green,blue} with value 16.\n", res.out)

	// Flags win over the environment.
	t.Setenv("FAIRALLOC_ALGORITHM", "serial_dictatorship")
	res = run(t, "", "allocate", path, "--algorithm", "round_robin")
	require.NoError(t, res.err)
}

func TestAllocate_ConfigFile(t *testing.T) {
	path := writeFile(t, "colours.yaml", coloursYAML)
	cfg := writeFile(t, "fairalloc.yaml", "algorithm: iterated_maximum_matching\ntrace: info\n")

	res := run(t, "", "allocate", path, "--config", cfg)
	require.NoError(t, res.err)
	assert.Equal(t, "Ami gets {red,yellow} with value 12.\nTami gets {green,blue} with value 16.\n", res.out)
	assert.Contains(t, res.errOut, "round 1:")

	res = run(t, "", "allocate", path, "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.EqualError(t, res.err, "Cannot load configuration")
}

func TestAllocate_Errors(t *testing.T) {
	colours := writeFile(t, "colours.yaml", coloursYAML)
	ragged := writeFile(t, "ragged.yaml", "[[1, 2], [3]]\n")

	tests := []struct {
		name  string
		args  []string
		title string
		hint  string
	}{
		{"missing file", []string{"allocate", filepath.Join(t.TempDir(), "nope.yaml")}, "Cannot read valuations", "single YAML or JSON document"},
		{"unknown algorithm", []string{"allocate", colours, "-a", "greedy"}, "Unknown algorithm", "round_robin"},
		{"unknown trace level", []string{"allocate", colours, "--trace", "loud"}, "Unknown trace level", "debug, info, warning or off"},
		{"ragged matrix", []string{"allocate", ragged}, "Invalid valuations", "Every agent needs a value"},
		{"unknown item", []string{"allocate", colours, "--items", "purple"}, "Invalid valuations", "purple"},
		{"bad order", []string{"allocate", colours, "--order", "Ami"}, "Invalid agent order", "exactly once"},
		{"order for matching", []string{"allocate", colours, "-a", "iterated_maximum_matching", "--order", "Tami,Ami"}, "Option not supported", "Either:"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := run(t, "", tc.args...)
			require.EqualError(t, res.err, tc.title)
			assert.Contains(t, res.errOut, tc.title)
			assert.Contains(t, res.errOut, tc.hint)
			assert.Empty(t, res.out)
		})
	}
}

func TestAllocate_RequiresOneFile(t *testing.T) {
	res := run(t, "", "allocate")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts 1 arg")
}

func TestLabels(t *testing.T) {
	assert.Equal(t, []string{"Tami", "Ami", "x"}, labels([]string{"Tami, Ami", "", "x"}))
	assert.Nil(t, labels(nil))
}
