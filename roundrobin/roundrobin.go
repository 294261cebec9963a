package roundrobin

import (
	"strings"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/trace"
	"github.com/katalvlaran/fairalloc/valuation"
)

// RoundRobin allocates the model's items (or the WithItems subset) by
// cyclic greedy picks.
//
// Algorithm Outline:
//  1. Resolve the turn order (default: canonical) and the eligible items,
//     kept in ascending canonical index order.
//  2. Cycle through the turn order. On each turn the acting agent takes the
//     eligible item with the highest value for it; the first such item in
//     canonical order wins ties. The item leaves the eligible set. The
//     candidates of each turn are traced at DEBUG.
//  3. Stop as soon as no eligible item remains (mid-cycle if need be).
//
// Edge cases:
//   - zero agents → empty allocation, items stay unassigned;
//   - zero items  → every agent gets an empty bundle;
//   - more agents than items → agents late in the order get nothing.
//
// Errors:
//   - ErrNilModel.
//   - *InvalidOrderError for unknown, duplicated or missing agents.
//   - *valuation.UnknownLabelError / *valuation.ShapeError for bad items.
//
// Complexity: O(|items|²) time, O(|items|) extra memory.
func RoundRobin(m *valuation.Model, opts ...Option) (*allocation.Allocation, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	tr := o.Tracer
	if tr == nil {
		tr = trace.Default()
	}

	order, err := resolveOrder(m, o.AgentOrder)
	if err != nil {
		return nil, err
	}
	remaining, err := m.ItemIndices(o.Items)
	if err != nil {
		return nil, err
	}
	al, err := allocation.New(m)
	if err != nil {
		return nil, err
	}

	for turn := 0; len(remaining) > 0 && len(order) > 0; turn++ {
		a := order[turn%len(order)]
		if tr.Enabled(trace.LevelDebug) {
			tr.Debug("turn {turn}: {agent} chooses among {items}",
				trace.F("turn", turn+1),
				trace.F("agent", m.Agent(a)),
				trace.F("items", itemSet(m, remaining)),
			)
		}
		best := bestItem(m, a, remaining)
		i := remaining[best]
		if err := al.AssignIndex(a, i); err != nil {
			return nil, err
		}
		remaining = append(remaining[:best], remaining[best+1:]...)

		tr.Info("{agent} takes {item} with value {value}",
			trace.F("turn", turn+1),
			trace.F("agent", m.Agent(a)),
			trace.F("item", m.Item(i)),
			trace.F("value", m.At(a, i)),
		)
	}
	al.Freeze()

	return al, nil
}

// itemSet renders item indices as {a,b}.
func itemSet(m *valuation.Model, idx []int) string {
	labels := make([]string, len(idx))
	for k, i := range idx {
		labels[k] = m.Item(i)
	}

	return "{" + strings.Join(labels, ",") + "}"
}

// bestItem returns the position in remaining of agent a's most valued item.
// remaining is in ascending canonical order, so the strict comparison keeps
// the lowest index on ties.
func bestItem(m *valuation.Model, a int, remaining []int) int {
	best := 0
	for k := 1; k < len(remaining); k++ {
		if m.At(a, remaining[k]) > m.At(a, remaining[best]) {
			best = k
		}
	}

	return best
}

// resolveOrder turns agent labels into indices and checks the order is a
// permutation of the model's agents.
func resolveOrder(m *valuation.Model, labels []string) ([]int, error) {
	if labels == nil {
		order := make([]int, m.NumAgents())
		for a := range order {
			order[a] = a
		}
		return order, nil
	}

	seen := make([]bool, m.NumAgents())
	order := make([]int, 0, len(labels))
	for _, l := range labels {
		a, ok := m.AgentIndex(l)
		if !ok {
			return nil, &InvalidOrderError{Reason: "unknown agent", Label: l}
		}
		if seen[a] {
			return nil, &InvalidOrderError{Reason: "duplicated agent", Label: l}
		}
		seen[a] = true
		order = append(order, a)
	}
	for a, ok := range seen {
		if !ok {
			return nil, &InvalidOrderError{Reason: "missing agent", Label: m.Agent(a)}
		}
	}

	return order, nil
}
