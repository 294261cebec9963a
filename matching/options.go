package matching

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/fairalloc/trace"
)

// Sentinel errors for iterated maximum matching.
var (
	// ErrBadAgentWeight indicates a non-positive or non-finite agent weight.
	ErrBadAgentWeight = errors.New("matching: agent weight must be positive and finite")

	// ErrNilModel indicates a nil valuation model.
	ErrNilModel = errors.New("matching: model is nil")
)

// Option configures IteratedMaximumMatching.
type Option func(*Options)

// Options holds the parameters of one IteratedMaximumMatching call.
type Options struct {
	// Items restricts allocation to this subset; nil means every item.
	Items []string

	// Tracer receives round events; nil means trace.Default().
	Tracer *trace.Tracer

	// MaxCardinality forces min(#agents, #remaining) matches per round.
	MaxCardinality bool

	// AgentWeights multiplies each listed agent's values in the objective.
	AgentWeights map[string]float64

	err error
}

// DefaultOptions returns max-cardinality matching over every item, traced to
// the default tracer, with unit agent weights.
func DefaultOptions() Options {
	return Options{MaxCardinality: true}
}

// WithItems restricts the run to the given items.
func WithItems(labels ...string) Option {
	return func(o *Options) {
		o.Items = append([]string{}, labels...)
	}
}

// WithTracer sends round events to t.
func WithTracer(t *trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// WithMaxCardinality toggles maximum-cardinality matching. When off, every
// agent may pass on a round instead of taking an item of negative value.
func WithMaxCardinality(on bool) Option {
	return func(o *Options) {
		o.MaxCardinality = on
	}
}

// WithAgentWeights scales agents' values in the matching objective. Weights
// must be positive and finite; unlisted agents keep weight 1.
func WithAgentWeights(weights map[string]float64) Option {
	return func(o *Options) {
		for agent, w := range weights {
			if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
				o.err = fmt.Errorf("%w: %q has weight %g", ErrBadAgentWeight, agent, w)
				return
			}
		}
		o.AgentWeights = make(map[string]float64, len(weights))
		for agent, w := range weights {
			o.AgentWeights[agent] = w
		}
	}
}
