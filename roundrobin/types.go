// Package roundrobin implements round-robin item allocation: agents take
// turns in a fixed cyclic order and on each turn pick the remaining item
// they value most.
//
// Ties between equally valued items go to the item that comes first in the
// model's canonical order. For a fixed model and options the result is fully
// deterministic. Each pick is traced at INFO with the fields turn, agent,
// item and value.
package roundrobin

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/fairalloc/trace"
)

// Sentinel errors for round-robin allocation.
var (
	// ErrInvalidOrder indicates an agent order that is not a permutation of
	// the model's agents.
	ErrInvalidOrder = errors.New("roundrobin: invalid agent order")

	// ErrNilModel indicates a nil valuation model.
	ErrNilModel = errors.New("roundrobin: model is nil")
)

// InvalidOrderError describes what is wrong with an agent order.
//
// Label is the offending agent (unknown, duplicated, or missing).
type InvalidOrderError struct {
	Reason string
	Label  string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("roundrobin: invalid agent order: %s %q", e.Reason, e.Label)
}

// Is reports whether target is ErrInvalidOrder.
func (e *InvalidOrderError) Is(target error) bool { return target == ErrInvalidOrder }

// Option configures RoundRobin.
type Option func(*Options)

// Options holds the parameters of one RoundRobin call.
type Options struct {
	// AgentOrder is the turn order; nil means canonical agent order.
	AgentOrder []string

	// Items restricts allocation to this subset; nil means every item.
	Items []string

	// Tracer receives one INFO event per pick; nil means trace.Default().
	Tracer *trace.Tracer
}

// DefaultOptions returns canonical turn order over all items, traced to the
// default tracer.
func DefaultOptions() Options { return Options{} }

// WithAgentOrder sets the turn order. It must list every agent exactly once.
func WithAgentOrder(labels ...string) Option {
	return func(o *Options) {
		o.AgentOrder = append([]string{}, labels...)
	}
}

// WithItems restricts allocation to the given items. Their order does not
// matter; ties still follow canonical item order.
func WithItems(labels ...string) Option {
	return func(o *Options) {
		o.Items = append([]string{}, labels...)
	}
}

// WithTracer sends pick events to t.
func WithTracer(t *trace.Tracer) Option {
	return func(o *Options) {
		o.Tracer = t
	}
}
