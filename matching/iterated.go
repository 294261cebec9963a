package matching

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/fairalloc/allocation"
	"github.com/katalvlaran/fairalloc/trace"
	"github.com/katalvlaran/fairalloc/valuation"
)

// Match is one (agent, item) pair chosen in a round, with the agent's own
// unweighted value for the item.
type Match struct {
	Agent string
	Item  string
	Value float64
}

// String renders the match as agent:item=value.
func (m Match) String() string {
	return fmt.Sprintf("%s:%s=%s", m.Agent, m.Item, allocation.FormatValue(m.Value))
}

// Matches renders as a bracketed list in round order.
type Matches []Match

// String implements fmt.Stringer.
func (ms Matches) String() string {
	parts := make([]string, len(ms))
	for k, m := range ms {
		parts[k] = m.String()
	}

	return "[" + strings.Join(parts, " ") + "]"
}

// IteratedMaximumMatching allocates the model's items (or the WithItems
// subset) by repeated per-round maximum-weight matching.
//
// Steps:
//  1. Resolve options; collect the remaining items in canonical order.
//  2. While items remain (remaining items traced at DEBUG):
//     a. weights[a][k] = weight(a) · value(a, remaining[k]).
//     b. assign, _ := MaxWeightAssignment(weights). When max cardinality
//     is off, one zero-weight pass column per agent follows the items.
//     c. Keep every pair matched to a real item. Zero kept pairs → stop.
//     d. Assign kept pairs in agent order, trace the round at INFO,
//     drop the assigned items.
//  3. If items are left over, emit a WARNING naming them.
//  4. Freeze and return.
//
// Errors:
//   - ErrNilModel, ErrBadAgentWeight.
//   - *valuation.UnknownLabelError for unknown items or weighted agents.
//   - *valuation.ShapeError for duplicate items in WithItems.
//
// Complexity: at most ⌈|items| / |agents|⌉ rounds under max cardinality,
// each O(n²·m) with n = min(|agents|, |remaining|).
func IteratedMaximumMatching(m *valuation.Model, opts ...Option) (*allocation.Allocation, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	tr := o.Tracer
	if tr == nil {
		tr = trace.Default()
	}

	remaining, err := m.ItemIndices(o.Items)
	if err != nil {
		return nil, err
	}
	weights, err := agentWeights(m, o.AgentWeights)
	if err != nil {
		return nil, err
	}
	al, err := allocation.New(m)
	if err != nil {
		return nil, err
	}

	n := m.NumAgents()
	for round := 1; len(remaining) > 0 && n > 0; round++ {
		if tr.Enabled(trace.LevelDebug) {
			tr.Debug("round {round}: remaining {items}",
				trace.F("round", round),
				trace.F("items", itemSet(m, remaining)),
			)
		}
		w := make([][]float64, n)
		for a := 0; a < n; a++ {
			w[a] = make([]float64, len(remaining))
			for k, i := range remaining {
				w[a][k] = weights[a] * m.At(a, i)
			}
		}
		assign, _ := MaxWeightAssignment(objective(w, o.MaxCardinality))

		taken := make([]bool, len(remaining))
		var matches Matches
		for a, k := range assign {
			if k < 0 || k >= len(remaining) {
				continue
			}
			i := remaining[k]
			if err := al.AssignIndex(a, i); err != nil {
				return nil, err
			}
			taken[k] = true
			matches = append(matches, Match{Agent: m.Agent(a), Item: m.Item(i), Value: m.At(a, i)})
		}
		if len(matches) == 0 {
			break
		}
		tr.Info("round {round}: {matches}",
			trace.F("round", round),
			trace.F("matches", matches),
		)

		next := remaining[:0:0]
		for k, i := range remaining {
			if !taken[k] {
				next = append(next, i)
			}
		}
		remaining = next
	}

	if len(remaining) > 0 && tr.Enabled(trace.LevelWarning) {
		tr.Warning("no agent accepts the remaining items {items}",
			trace.F("items", itemSet(m, remaining)),
		)
	}
	al.Freeze()

	return al, nil
}

// objective returns the matrix handed to the assignment solver. Without max
// cardinality every agent also gets its own zero-weight pass column after
// the real items: a negative pair always loses to passing, and a zero pair
// wins the tie against it by coming first. Passes are dropped afterwards.
func objective(w [][]float64, maxCardinality bool) [][]float64 {
	if maxCardinality {
		return w
	}
	out := make([][]float64, len(w))
	for a, row := range w {
		out[a] = make([]float64, len(row)+len(w))
		copy(out[a], row)
	}

	return out
}

// itemSet renders item indices as {a,b}.
func itemSet(m *valuation.Model, idx []int) string {
	labels := make([]string, len(idx))
	for k, i := range idx {
		labels[k] = m.Item(i)
	}

	return "{" + strings.Join(labels, ",") + "}"
}

// agentWeights expands the weight map into a per-index slice.
func agentWeights(m *valuation.Model, byLabel map[string]float64) ([]float64, error) {
	w := make([]float64, m.NumAgents())
	for a := range w {
		w[a] = 1
	}
	labels := make([]string, 0, len(byLabel))
	for agent := range byLabel {
		labels = append(labels, agent)
	}
	sort.Strings(labels)
	for _, agent := range labels {
		a, ok := m.AgentIndex(agent)
		if !ok {
			return nil, &valuation.UnknownLabelError{Kind: valuation.AgentLabel, Label: agent}
		}
		w[a] = byLabel[agent]
	}

	return w, nil
}
