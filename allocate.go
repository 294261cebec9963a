package fairalloc

import (
	"errors"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/trace"
	"github.com/katalvlaran/fairalloc/valuation"
)

// ErrNilModel is returned by AllocateModel for a nil model.
var ErrNilModel = errors.New("fairalloc: nil model")

// Option configures a single Allocate call.
type Option func(*Options)

// Options holds the per-call settings handed to an Algorithm.
//
// Nil slices mean "not set": AgentOrder nil is canonical order, Items nil is
// every item. Algorithms reject settings they cannot honour with
// ErrUnsupportedOption.
type Options struct {
	AgentOrder []string
	Items      []string

	// Normalize is applied to the raw input by Allocate; ignored by
	// AllocateModel.
	Normalize []valuation.Option

	// Tracer receives the run's events; nil means trace.Default(). When
	// listeners were added through WithListener, the algorithm sees a per-call
	// tracer that carries them and forwards everything to this one.
	Tracer *trace.Tracer

	MaxCardinality bool
	AgentWeights   map[string]float64

	listeners []scopedListener
}

type scopedListener struct {
	listen trace.Listener
	min    trace.Level
}

// DefaultOptions returns canonical order, all items, max cardinality on and
// the process-wide default tracer.
func DefaultOptions() Options {
	return Options{MaxCardinality: true}
}

// WithAgentOrder sets the round-robin turn order.
func WithAgentOrder(labels ...string) Option {
	return func(o *Options) {
		o.AgentOrder = append([]string{}, labels...)
	}
}

// WithItems restricts the run to the given items.
func WithItems(labels ...string) Option {
	return func(o *Options) {
		o.Items = append([]string{}, labels...)
	}
}

// WithNormalize passes options to valuation.Normalize.
func WithNormalize(opts ...valuation.Option) Option {
	return func(o *Options) {
		o.Normalize = append(o.Normalize, opts...)
	}
}

// WithTracer sets the tracer events go to.
func WithTracer(t *trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}

// WithListener attaches l at level min for this call only. The call runs on
// its own tracer, so concurrent calls never see each other's events. Every
// event is also forwarded to the WithTracer tracer, or to trace.Default()
// when none was given, so existing listeners there keep receiving it.
func WithListener(l trace.Listener, min trace.Level) Option {
	return func(o *Options) {
		if l != nil {
			o.listeners = append(o.listeners, scopedListener{listen: l, min: min})
		}
	}
}

// WithMaxCardinality toggles the matching objective; see
// matching.WithMaxCardinality.
func WithMaxCardinality(on bool) Option {
	return func(o *Options) {
		o.MaxCardinality = on
	}
}

// WithAgentWeights scales each agent's valuations in the matching objective.
func WithAgentWeights(weights map[string]float64) Option {
	return func(o *Options) {
		o.AgentWeights = weights
	}
}

// Allocate normalizes in and runs algo on it.
//
// Steps:
//  1. valuation.Normalize(in, WithNormalize options…).
//  2. AllocateModel on the result.
//
// A nil algo means RoundRobin. Errors from either stage are returned as is,
// so errors.Is against valuation, roundrobin and matching sentinels works.
func Allocate(in valuation.Input, algo Algorithm, opts ...Option) (*allocation.Allocation, error) {
	o := collect(opts)
	m, err := valuation.Normalize(in, o.Normalize...)
	if err != nil {
		return nil, err
	}

	return run(m, algo, o)
}

// AllocateModel runs algo on an already normalized model.
func AllocateModel(m *valuation.Model, algo Algorithm, opts ...Option) (*allocation.Allocation, error) {
	if m == nil {
		return nil, ErrNilModel
	}

	return run(m, algo, collect(opts))
}

func collect(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// run wires per-call listeners onto a fresh tracer that forwards to the
// caller's tracer, and hands over to algo. Listeners are detached before run
// returns, also on error.
func run(m *valuation.Model, algo Algorithm, o Options) (*allocation.Allocation, error) {
	if algo == nil {
		algo = RoundRobin
	}
	if len(o.listeners) == 0 {
		return algo.Allocate(m, o)
	}

	parent := o.Tracer
	if parent == nil {
		parent = trace.Default()
	}
	local := trace.New()
	defer local.Attach(func(ev trace.Event) {
		parent.Emit(ev.Level, ev.Template, ev.Fields...)
	}, trace.LevelDebug)()
	for _, l := range o.listeners {
		defer local.Attach(l.listen, l.min)()
	}
	o.Tracer = local
	o.listeners = nil

	return algo.Allocate(m, o)
}
