package valuation

import (
	"sort"
	"strconv"
)

// Shape is the discriminant of the closed set of accepted input variants.
type Shape int

const (
	// ShapeNestedMapping tags agent → item → value inputs.
	ShapeNestedMapping Shape = iota
	// ShapeLabeledVectors tags agent → []value inputs.
	ShapeLabeledVectors
	// ShapePositionalMatrix tags [][]value inputs.
	ShapePositionalMatrix
)

// String implements fmt.Stringer.
func (s Shape) String() string {
	switch s {
	case ShapeNestedMapping:
		return "nested-mapping"
	case ShapeLabeledVectors:
		return "labeled-vectors"
	case ShapePositionalMatrix:
		return "positional-matrix"
	default:
		return "shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Input is one of NestedMapping, LabeledVectors, PositionalMatrix or
// *Ordered. The set is closed: the unexported method keeps other packages
// from adding variants.
type Input interface {
	Shape() Shape
	model() (*Model, error)
}

// NestedMapping maps each agent label to its item → value table.
// Every agent must value the same item set.
type NestedMapping map[string]map[string]float64

// LabeledVectors maps each agent label to values by item position.
type LabeledVectors map[string][]float64

// PositionalMatrix lists one row of values per agent.
type PositionalMatrix [][]float64

// Shape implements Input.
func (NestedMapping) Shape() Shape { return ShapeNestedMapping }

// Shape implements Input.
func (LabeledVectors) Shape() Shape { return ShapeLabeledVectors }

// Shape implements Input.
func (PositionalMatrix) Shape() Shape { return ShapePositionalMatrix }

// ItemLabelAt returns the synthesized label of positional item i.
func ItemLabelAt(i int) string { return strconv.Itoa(i) }

// AgentLabelAt returns the synthesized label of positional agent a.
func AgentLabelAt(a int) string { return "Agent #" + strconv.Itoa(a) }

func (in NestedMapping) model() (*Model, error) {
	return in.ordered(sortedKeys(in), nil)
}

// ordered builds the model with the given agent order. When items is nil the
// item universe is the sorted union of all agents' keys.
func (in NestedMapping) ordered(agents, items []string) (*Model, error) {
	if items == nil {
		universe := make(map[string]struct{})
		for _, row := range in {
			for item := range row {
				universe[item] = struct{}{}
			}
		}
		items = make([]string, 0, len(universe))
		for item := range universe {
			items = append(items, item)
		}
		sort.Strings(items)
	}

	values := make([][]float64, len(agents))
	for a, agent := range agents {
		row, ok := in[agent]
		if !ok {
			return nil, &UnknownLabelError{Kind: AgentLabel, Label: agent}
		}
		if len(row) != len(items) {
			return nil, &ShapeError{Reason: "agents value different item sets", Agent: agent, Want: len(items), Got: len(row)}
		}
		values[a] = make([]float64, len(items))
		for i, item := range items {
			v, ok := row[item]
			if !ok {
				return nil, &ShapeError{Reason: "missing value for item " + quote(item), Agent: agent}
			}
			values[a][i] = v
		}
	}

	return NewModel(agents, items, values)
}

func (in LabeledVectors) model() (*Model, error) {
	return in.ordered(sortedKeys(in))
}

func (in LabeledVectors) ordered(agents []string) (*Model, error) {
	rows := make([][]float64, len(agents))
	for a, agent := range agents {
		row, ok := in[agent]
		if !ok {
			return nil, &UnknownLabelError{Kind: AgentLabel, Label: agent}
		}
		rows[a] = row
	}
	if err := checkRectangular(agents, rows); err != nil {
		return nil, err
	}

	return NewModel(agents, positionalItems(rows), rows)
}

func (in PositionalMatrix) model() (*Model, error) {
	agents := make([]string, len(in))
	for a := range in {
		agents[a] = AgentLabelAt(a)
	}
	if err := checkRectangular(agents, in); err != nil {
		return nil, err
	}

	return NewModel(agents, positionalItems(in), in)
}

// checkRectangular requires every row to be as long as the first one.
func checkRectangular(agents []string, rows [][]float64) error {
	if len(rows) == 0 {
		return nil
	}
	want := len(rows[0])
	for a, row := range rows {
		if len(row) != want {
			return &ShapeError{Reason: "non-rectangular input", Agent: agents[a], Want: want, Got: len(row)}
		}
	}

	return nil
}

func positionalItems(rows [][]float64) []string {
	if len(rows) == 0 {
		return nil
	}
	items := make([]string, len(rows[0]))
	for i := range items {
		items[i] = ItemLabelAt(i)
	}

	return items
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func quote(s string) string { return strconv.Quote(s) }
