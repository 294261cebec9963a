package valuation

import (
	"math"
	"sort"
)

// Model is the canonical valuation table: agents × items → value.
//
// The zero value is an empty model (no agents, no items). A Model never
// changes after construction; every accessor that exposes a slice or map
// returns a fresh copy, so a single Model can back many concurrent runs.
type Model struct {
	agents []string
	items  []string

	agentIndex map[string]int
	itemIndex  map[string]int

	// values[a][i] is agent a's value for item i.
	values [][]float64
}

// NewModel validates and builds a Model from explicit labels and a dense
// value table where values[a][i] belongs to agents[a] and items[i].
//
// Steps:
//  1. Reject duplicate agent or item labels.
//  2. Require len(values) == len(agents) and every row len == len(items).
//  3. Reject NaN and ±Inf.
//  4. Deep-copy labels and values.
//
// Complexity: O(|agents|·|items|) time and memory.
func NewModel(agents, items []string, values [][]float64) (*Model, error) {
	agentIndex, err := indexLabels(agents, AgentLabel)
	if err != nil {
		return nil, err
	}
	itemIndex, err := indexLabels(items, ItemLabel)
	if err != nil {
		return nil, err
	}
	if len(values) != len(agents) {
		return nil, &ShapeError{Reason: "row count does not match agent count", Want: len(agents), Got: len(values)}
	}

	table := make([][]float64, len(values))
	for a, row := range values {
		if len(row) != len(items) {
			return nil, &ShapeError{Reason: "ragged value rows", Agent: agents[a], Want: len(items), Got: len(row)}
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ShapeError{Reason: "non-finite value", Agent: agents[a]}
			}
		}
		table[a] = append([]float64(nil), row...)
	}

	return &Model{
		agents:     append([]string(nil), agents...),
		items:      append([]string(nil), items...),
		agentIndex: agentIndex,
		itemIndex:  itemIndex,
		values:     table,
	}, nil
}

// indexLabels maps each label to its position, failing on duplicates.
func indexLabels(labels []string, kind LabelKind) (map[string]int, error) {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := idx[l]; dup {
			return nil, &ShapeError{Reason: "duplicate " + string(kind) + " label " + quote(l)}
		}
		idx[l] = i
	}

	return idx, nil
}

// Agents returns the agent labels in canonical order.
func (m *Model) Agents() []string { return append([]string(nil), m.agents...) }

// Items returns the item labels in canonical order.
func (m *Model) Items() []string { return append([]string(nil), m.items...) }

// NumAgents returns the number of agents.
func (m *Model) NumAgents() int { return len(m.agents) }

// NumItems returns the number of items.
func (m *Model) NumItems() int { return len(m.items) }

// Agent returns the label of agent index a.
func (m *Model) Agent(a int) string { return m.agents[a] }

// Item returns the label of item index i.
func (m *Model) Item(i int) string { return m.items[i] }

// AgentIndex returns the canonical index of an agent label.
func (m *Model) AgentIndex(label string) (int, bool) {
	a, ok := m.agentIndex[label]
	return a, ok
}

// ItemIndex returns the canonical index of an item label.
func (m *Model) ItemIndex(label string) (int, bool) {
	i, ok := m.itemIndex[label]
	return i, ok
}

// At returns agent a's value for item i by index. It panics on out-of-range
// indices, like slice indexing.
func (m *Model) At(a, i int) float64 { return m.values[a][i] }

// Value returns the value agent assigns to item.
func (m *Model) Value(agent, item string) (float64, error) {
	a, ok := m.agentIndex[agent]
	if !ok {
		return 0, &UnknownLabelError{Kind: AgentLabel, Label: agent}
	}
	i, ok := m.itemIndex[item]
	if !ok {
		return 0, &UnknownLabelError{Kind: ItemLabel, Label: item}
	}

	return m.values[a][i], nil
}

// Row returns a copy of agent a's values in canonical item order.
func (m *Model) Row(a int) []float64 { return append([]float64(nil), m.values[a]...) }

// Total returns agent a's value for the whole item set.
func (m *Model) Total(a int) float64 {
	var sum float64
	for _, v := range m.values[a] {
		sum += v
	}

	return sum
}

// Restrict returns a new Model limited to the given ordered agent and item
// subsets. A nil slice keeps the full set in canonical order; an empty
// non-nil slice selects nothing. The caller's order becomes the canonical
// order of the result.
func (m *Model) Restrict(agents, items []string) (*Model, error) {
	agentIdx, err := m.selectLabels(agents, m.agents, m.agentIndex, AgentLabel)
	if err != nil {
		return nil, err
	}
	itemIdx, err := m.selectLabels(items, m.items, m.itemIndex, ItemLabel)
	if err != nil {
		return nil, err
	}

	agentLabels := make([]string, len(agentIdx))
	for k, a := range agentIdx {
		agentLabels[k] = m.agents[a]
	}
	itemLabels := make([]string, len(itemIdx))
	for k, i := range itemIdx {
		itemLabels[k] = m.items[i]
	}
	values := make([][]float64, len(agentIdx))
	for k, a := range agentIdx {
		row := make([]float64, len(itemIdx))
		for c, i := range itemIdx {
			row[c] = m.values[a][i]
		}
		values[k] = row
	}

	return NewModel(agentLabels, itemLabels, values)
}

// ItemIndices resolves an item subset to canonical indices sorted ascending,
// which is the order algorithms scan candidates in. A nil subset selects
// every item.
func (m *Model) ItemIndices(items []string) ([]int, error) {
	idx, err := m.selectLabels(items, m.items, m.itemIndex, ItemLabel)
	if err != nil {
		return nil, err
	}
	sort.Ints(idx)

	return idx, nil
}

// selectLabels resolves a requested subset to indices, rejecting unknown
// and repeated labels.
func (m *Model) selectLabels(want, all []string, index map[string]int, kind LabelKind) ([]int, error) {
	if want == nil {
		out := make([]int, len(all))
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	seen := make(map[string]bool, len(want))
	out := make([]int, 0, len(want))
	for _, l := range want {
		i, ok := index[l]
		if !ok {
			return nil, &UnknownLabelError{Kind: kind, Label: l}
		}
		if seen[l] {
			return nil, &ShapeError{Reason: "duplicate " + string(kind) + " label " + quote(l)}
		}
		seen[l] = true
		out = append(out, i)
	}

	return out, nil
}

// NestedMapping re-exposes the model as agent → item → value.
func (m *Model) NestedMapping() NestedMapping {
	out := make(NestedMapping, len(m.agents))
	for a, agent := range m.agents {
		inner := make(map[string]float64, len(m.items))
		for i, item := range m.items {
			inner[item] = m.values[a][i]
		}
		out[agent] = inner
	}

	return out
}

// LabeledVectors re-exposes the model as agent → values in canonical item order.
func (m *Model) LabeledVectors() LabeledVectors {
	out := make(LabeledVectors, len(m.agents))
	for a, agent := range m.agents {
		out[agent] = m.Row(a)
	}

	return out
}

// Matrix re-exposes the model as a dense row-per-agent table.
func (m *Model) Matrix() PositionalMatrix {
	out := make(PositionalMatrix, len(m.agents))
	for a := range m.agents {
		out[a] = m.Row(a)
	}

	return out
}
