package commands

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/go-logr/stdr"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/fairalloc"
	"github.com/katalvlaran/fairalloc/internal/printer"
	"github.com/katalvlaran/fairalloc/roundrobin"
	"github.com/katalvlaran/fairalloc/trace"
	"github.com/katalvlaran/fairalloc/valuation"
)

func newAllocateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate <file>",
		Short: "Allocate the items of a valuation file",
		Long: `Allocate reads valuations from a YAML or JSON file ("-" for stdin), runs the
chosen algorithm and prints one line per agent:

  <agent> gets {<items>} with value <value>.

Agent and item order follow the file. Trace events go to stderr.

Every flag can also be set in fairalloc.yaml or through FAIRALLOC_<FLAG>
environment variables (dashes become underscores).`,
		Example: `  fairalloc allocate colours.yaml
  fairalloc allocate colours.yaml --order Tami,Ami --items green,red,blue
  fairalloc allocate colours.yaml --algorithm iterated_maximum_matching --trace info`,
		Args: cobra.ExactArgs(1),
		RunE: runAllocate,
	}

	f := cmd.Flags()
	f.StringP("algorithm", "a", fairalloc.RoundRobinName, "allocation algorithm (see 'fairalloc algorithms')")
	f.StringSlice("order", nil, "round-robin turn order, a permutation of all agents")
	f.StringSlice("items", nil, "allocate only these items")
	f.StringSlice("agents", nil, "keep only these agents, in this order")
	f.String("trace", trace.DefaultListenerLevel.String(), "trace level: debug, info, warning or off")
	f.Bool("no-max-cardinality", false, "matching: maximize value instead of the number of matched items")
	f.String("config", "", "config file (default ./fairalloc.yaml when present)")

	return cmd
}

func runAllocate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return printer.Error(
			"Cannot load configuration",
			err.Error(),
			[]string{"Check the --config path and that the file is valid YAML."},
		)
	}

	algo, err := fairalloc.Lookup(cfg.Algorithm)
	if err != nil {
		return printer.Error(
			"Unknown algorithm",
			fmt.Sprintf("No algorithm is registered as %q.", cfg.Algorithm),
			[]string{fmt.Sprintf("Use one of: %s.", strings.Join(fairalloc.Algorithms(), ", "))},
		)
	}

	level, err := trace.ParseLevel(cfg.Trace)
	if err != nil {
		return printer.Error(
			"Unknown trace level",
			err.Error(),
			[]string{"Use one of debug, info, warning or off."},
		)
	}

	in, err := readValuations(cmd, args[0])
	if err != nil {
		return printer.Error(
			"Cannot read valuations",
			err.Error(),
			[]string{"Check the file exists and holds a single YAML or JSON document."},
		)
	}

	al, err := fairalloc.Allocate(in, algo, allocateOptions(cfg, level, cmd.ErrOrStderr())...)
	if err != nil {
		return explain(err)
	}

	fmt.Fprint(cmd.OutOrStdout(), al.String())
	if left := leftover(al.Unassigned(), cfg.Items); len(left) > 0 && al.Model().NumAgents() > 0 {
		printer.Warning("%d item(s) left unassigned: {%s}\n", len(left), strings.Join(left, ","))
	}

	return nil
}

// leftover keeps the unassigned items that were up for allocation.
func leftover(unassigned, eligible []string) []string {
	if len(eligible) == 0 {
		return unassigned
	}
	want := make(map[string]bool, len(eligible))
	for _, item := range eligible {
		want[item] = true
	}
	var left []string
	for _, item := range unassigned {
		if want[item] {
			left = append(left, item)
		}
	}

	return left
}

func readValuations(cmd *cobra.Command, path string) (valuation.Input, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	return valuation.Decode(r)
}

func allocateOptions(cfg *allocateConfig, level trace.Level, stderr io.Writer) []fairalloc.Option {
	var opts []fairalloc.Option
	if len(cfg.Agents) > 0 {
		opts = append(opts, fairalloc.WithNormalize(valuation.WithAgents(cfg.Agents...)))
	}
	if len(cfg.Order) > 0 {
		opts = append(opts, fairalloc.WithAgentOrder(cfg.Order...))
	}
	if len(cfg.Items) > 0 {
		opts = append(opts, fairalloc.WithItems(cfg.Items...))
	}
	if cfg.NoMaxCardinality {
		opts = append(opts, fairalloc.WithMaxCardinality(false))
	}
	if level != trace.LevelOff {
		if level == trace.LevelDebug {
			stdr.SetVerbosity(1)
		}
		logger := stdr.New(log.New(stderr, "", 0)).WithName("fairalloc")
		opts = append(opts, fairalloc.WithListener(trace.LogrListener(logger), level))
	}

	return opts
}

// explain prints err with a title matching its kind.
func explain(err error) error {
	switch {
	case errors.Is(err, valuation.ErrShape):
		return printer.Error("Invalid valuations", err.Error(),
			[]string{"Every agent needs a value for every item, and labels must exist and be unique."})
	case errors.Is(err, roundrobin.ErrInvalidOrder):
		return printer.Error("Invalid agent order", err.Error(),
			[]string{"List every agent exactly once in --order."})
	case errors.Is(err, fairalloc.ErrUnsupportedOption):
		return printer.Error("Option not supported", err.Error(), []string{
			"Drop the option.",
			"Choose an algorithm that supports it.",
		})
	default:
		return printer.Error("Allocation failed", err.Error(), nil)
	}
}
