package valuation

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Decode reads one YAML or JSON document and returns it as an Ordered input,
// keeping the agent and item order in which keys appear in the document.
//
// The variant is chosen structurally:
//   - mapping of mappings   → NestedMapping (agent and item order kept)
//   - mapping of sequences  → LabeledVectors (agent order kept)
//   - sequence of sequences → PositionalMatrix
//
// Any other layout, a non-numeric scalar, or a repeated key yields *ShapeError.
// An empty document decodes to an empty PositionalMatrix.
func Decode(r io.Reader) (*Ordered, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Ordered{Input: PositionalMatrix{}}, nil
		}
		return nil, fmt.Errorf("valuation: decode: %w", err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return &Ordered{Input: PositionalMatrix{}}, nil
		}
		root = root.Content[0]
	}

	switch root.Kind {
	case yaml.MappingNode:
		return decodeMapping(root)
	case yaml.SequenceNode:
		matrix := make(PositionalMatrix, 0, len(root.Content))
		for a, row := range root.Content {
			values, err := decodeRow(row, AgentLabelAt(a))
			if err != nil {
				return nil, err
			}
			matrix = append(matrix, values)
		}
		return &Ordered{Input: matrix}, nil
	default:
		return nil, &ShapeError{Reason: fmt.Sprintf("document root must be a mapping or a sequence (line %d)", root.Line)}
	}
}

// decodeMapping handles agent-keyed documents. Content alternates key and
// value nodes.
func decodeMapping(root *yaml.Node) (*Ordered, error) {
	if len(root.Content) == 0 {
		return &Ordered{Input: NestedMapping{}, Agents: []string{}}, nil
	}
	valueKind := root.Content[1].Kind
	agents := make([]string, 0, len(root.Content)/2)
	seen := make(map[string]bool, len(root.Content)/2)

	switch valueKind {
	case yaml.MappingNode:
		nested := make(NestedMapping, len(root.Content)/2)
		var items []string
		for k := 0; k+1 < len(root.Content); k += 2 {
			agent, body := root.Content[k].Value, root.Content[k+1]
			if seen[agent] {
				return nil, &ShapeError{Reason: "duplicate agent label " + quote(agent)}
			}
			seen[agent] = true
			if body.Kind != yaml.MappingNode {
				return nil, &ShapeError{Reason: "mixed value kinds", Agent: agent}
			}
			row := make(map[string]float64, len(body.Content)/2)
			var order []string
			for j := 0; j+1 < len(body.Content); j += 2 {
				item := body.Content[j].Value
				if _, dup := row[item]; dup {
					return nil, &ShapeError{Reason: "duplicate item label " + quote(item), Agent: agent}
				}
				v, err := decodeScalar(body.Content[j+1], agent)
				if err != nil {
					return nil, err
				}
				row[item] = v
				order = append(order, item)
			}
			if items == nil {
				items = order
			}
			nested[agent] = row
			agents = append(agents, agent)
		}
		if items == nil {
			items = []string{}
		}
		return &Ordered{Input: nested, Agents: agents, Items: items}, nil

	case yaml.SequenceNode:
		vectors := make(LabeledVectors, len(root.Content)/2)
		for k := 0; k+1 < len(root.Content); k += 2 {
			agent, body := root.Content[k].Value, root.Content[k+1]
			if seen[agent] {
				return nil, &ShapeError{Reason: "duplicate agent label " + quote(agent)}
			}
			seen[agent] = true
			values, err := decodeRow(body, agent)
			if err != nil {
				return nil, err
			}
			vectors[agent] = values
			agents = append(agents, agent)
		}
		return &Ordered{Input: vectors, Agents: agents}, nil

	default:
		return nil, &ShapeError{Reason: "agent values must be a mapping or a sequence", Agent: root.Content[0].Value}
	}
}

func decodeRow(n *yaml.Node, agent string) ([]float64, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, &ShapeError{Reason: "mixed value kinds", Agent: agent}
	}
	values := make([]float64, 0, len(n.Content))
	for _, c := range n.Content {
		v, err := decodeScalar(c, agent)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	return values, nil
}

func decodeScalar(n *yaml.Node, agent string) (float64, error) {
	if n.Kind != yaml.ScalarNode {
		return 0, &ShapeError{Reason: fmt.Sprintf("expected a number at line %d", n.Line), Agent: agent}
	}
	var v float64
	if err := n.Decode(&v); err != nil {
		return 0, &ShapeError{Reason: fmt.Sprintf("value %q at line %d is not a number", n.Value, n.Line), Agent: agent}
	}

	return v, nil
}
