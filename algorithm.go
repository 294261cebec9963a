package fairalloc

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/matching"
	"github.com/katalvlaran/fairalloc/roundrobin"
	"github.com/katalvlaran/fairalloc/valuation"
)

// Sentinel errors for algorithm selection.
var (
	// ErrUnknownAlgorithm is returned by Lookup for an unregistered name.
	ErrUnknownAlgorithm = errors.New("fairalloc: unknown algorithm")

	// ErrDuplicateAlgorithm is returned by Register for a taken name.
	ErrDuplicateAlgorithm = errors.New("fairalloc: algorithm already registered")

	// ErrUnsupportedOption is returned when an algorithm receives an option
	// it has no use for (e.g. an agent order for matching).
	ErrUnsupportedOption = errors.New("fairalloc: option not supported by algorithm")
)

// Algorithm is one allocation procedure.
//
// Allocate must treat the model as read-only, must not keep the returned
// allocation, and must emit trace events only through o.Tracer.
type Algorithm interface {
	Name() string
	Allocate(m *valuation.Model, o Options) (*allocation.Allocation, error)
}

// Names of the built-in algorithms.
const (
	RoundRobinName              = "round_robin"
	IteratedMaximumMatchingName = "iterated_maximum_matching"
)

// Built-in algorithms.
var (
	RoundRobin              Algorithm = roundRobin{}
	IteratedMaximumMatching Algorithm = iteratedMaximumMatching{}
)

type roundRobin struct{}

func (roundRobin) Name() string { return RoundRobinName }

func (roundRobin) Allocate(m *valuation.Model, o Options) (*allocation.Allocation, error) {
	if o.AgentWeights != nil {
		return nil, fmt.Errorf("%w: agent weights for %s", ErrUnsupportedOption, RoundRobinName)
	}
	if !o.MaxCardinality {
		return nil, fmt.Errorf("%w: max cardinality for %s", ErrUnsupportedOption, RoundRobinName)
	}
	opts := []roundrobin.Option{roundrobin.WithTracer(o.Tracer)}
	if o.AgentOrder != nil {
		opts = append(opts, roundrobin.WithAgentOrder(o.AgentOrder...))
	}
	if o.Items != nil {
		opts = append(opts, roundrobin.WithItems(o.Items...))
	}

	return roundrobin.RoundRobin(m, opts...)
}

type iteratedMaximumMatching struct{}

func (iteratedMaximumMatching) Name() string { return IteratedMaximumMatchingName }

func (iteratedMaximumMatching) Allocate(m *valuation.Model, o Options) (*allocation.Allocation, error) {
	if o.AgentOrder != nil {
		return nil, fmt.Errorf("%w: agent order for %s", ErrUnsupportedOption, IteratedMaximumMatchingName)
	}
	opts := []matching.Option{
		matching.WithTracer(o.Tracer),
		matching.WithMaxCardinality(o.MaxCardinality),
	}
	if o.Items != nil {
		opts = append(opts, matching.WithItems(o.Items...))
	}
	if o.AgentWeights != nil {
		opts = append(opts, matching.WithAgentWeights(o.AgentWeights))
	}

	return matching.IteratedMaximumMatching(m, opts...)
}

var registry = struct {
	sync.RWMutex
	byName map[string]Algorithm
}{byName: map[string]Algorithm{
	RoundRobinName:              RoundRobin,
	IteratedMaximumMatchingName: IteratedMaximumMatching,
}}

// Register makes a under a.Name() available to Lookup, so variants such as
// egalitarian or max-product procedures can plug into the same facade.
func Register(a Algorithm) error {
	if a == nil {
		return fmt.Errorf("%w: nil algorithm", ErrUnknownAlgorithm)
	}
	registry.Lock()
	defer registry.Unlock()
	if _, taken := registry.byName[a.Name()]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateAlgorithm, a.Name())
	}
	registry.byName[a.Name()] = a

	return nil
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (Algorithm, error) {
	registry.RLock()
	defer registry.RUnlock()
	a, ok := registry.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}

	return a, nil
}

// Algorithms lists the registered algorithm names, sorted.
func Algorithms() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
