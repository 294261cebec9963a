// Package allocation defines the result of a fair-division run: one
// disjoint bundle of whole items per agent, plus value queries evaluated
// against the valuation model the bundles were built from.
//
// An Allocation is created empty, filled by exactly one algorithm run
// through Assign/AssignIndex, then frozen before it is handed back to the
// caller. It owns its bundles and only borrows the (read-only) model.
//
// Rendering contract (String):
//
//	Ami gets {blue,green} with value 14.
//	Tami gets {red,yellow} with value 10.
//
// Agents appear in the model's canonical order, items inside a bundle in
// canonical item order, one line per agent.
package allocation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/fairalloc/valuation"
)

// Sentinel errors for allocation mutation.
var (
	// ErrDuplicateAssignment indicates an item was assigned a second time.
	ErrDuplicateAssignment = errors.New("allocation: item already assigned")

	// ErrFrozen indicates a mutation after the allocation was returned.
	ErrFrozen = errors.New("allocation: allocation is frozen")

	// ErrNilModel indicates New was called without a model.
	ErrNilModel = errors.New("allocation: model is nil")
)

// DuplicateAssignmentError reports an attempt to give Item to Agent while
// Owner already holds it. Reaching it from an algorithm means a bug in that
// algorithm.
type DuplicateAssignmentError struct {
	Item  string
	Owner string
	Agent string
}

func (e *DuplicateAssignmentError) Error() string {
	return fmt.Sprintf("allocation: item %q assigned to %q is already owned by %q", e.Item, e.Agent, e.Owner)
}

// Is reports whether target is ErrDuplicateAssignment.
func (e *DuplicateAssignmentError) Is(target error) bool { return target == ErrDuplicateAssignment }

// unowned marks an item without an owner in Allocation.owner.
const unowned = -1

// Allocation maps each agent of a model to a disjoint bundle of items.
type Allocation struct {
	model *valuation.Model

	// bundles[a] holds item indices in assignment order.
	bundles [][]int
	// owner[i] is the agent index holding item i, or unowned.
	owner  []int
	frozen bool
}

// New returns an empty allocation over m: every agent starts with an empty
// bundle and every item is unowned.
func New(m *valuation.Model) (*Allocation, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	owner := make([]int, m.NumItems())
	for i := range owner {
		owner[i] = unowned
	}

	return &Allocation{
		model:   m,
		bundles: make([][]int, m.NumAgents()),
		owner:   owner,
	}, nil
}

// Model returns the valuation model the allocation is evaluated against.
func (al *Allocation) Model() *valuation.Model { return al.model }

// Assign adds item to agent's bundle.
//
// Errors:
//   - *valuation.UnknownLabelError   — agent or item is not in the model.
//   - *DuplicateAssignmentError      — item already belongs to some agent.
//   - ErrFrozen                      — the allocation was frozen.
func (al *Allocation) Assign(agent, item string) error {
	a, err := al.agentIndex(agent)
	if err != nil {
		return err
	}
	i, ok := al.model.ItemIndex(item)
	if !ok {
		return &valuation.UnknownLabelError{Kind: valuation.ItemLabel, Label: item}
	}

	return al.AssignIndex(a, i)
}

// AssignIndex is Assign by canonical indices. Out-of-range indices panic.
func (al *Allocation) AssignIndex(a, i int) error {
	if al.frozen {
		return ErrFrozen
	}
	if o := al.owner[i]; o != unowned {
		return &DuplicateAssignmentError{
			Item:  al.model.Item(i),
			Owner: al.model.Agent(o),
			Agent: al.model.Agent(a),
		}
	}
	al.owner[i] = a
	al.bundles[a] = append(al.bundles[a], i)

	return nil
}

// Freeze seals the allocation; later Assign calls fail with ErrFrozen.
func (al *Allocation) Freeze() { al.frozen = true }

// Frozen reports whether Freeze was called.
func (al *Allocation) Frozen() bool { return al.frozen }

// Bundle returns a copy of agent's bundle in canonical item order.
func (al *Allocation) Bundle(agent string) ([]string, error) {
	a, err := al.agentIndex(agent)
	if err != nil {
		return nil, err
	}

	return al.bundleLabels(a), nil
}

// Value returns agent's own value for its own bundle.
func (al *Allocation) Value(agent string) (float64, error) {
	a, err := al.agentIndex(agent)
	if err != nil {
		return 0, err
	}

	return al.valueOf(a, a), nil
}

// ValueOf returns the value agent assigns to other's bundle, under agent's
// valuation. ValueOf(x, x) equals Value(x).
func (al *Allocation) ValueOf(agent, other string) (float64, error) {
	a, err := al.agentIndex(agent)
	if err != nil {
		return 0, err
	}
	b, err := al.agentIndex(other)
	if err != nil {
		return 0, err
	}

	return al.valueOf(a, b), nil
}

// Utilities returns every agent's own value in canonical agent order.
func (al *Allocation) Utilities() []float64 {
	out := make([]float64, len(al.bundles))
	for a := range al.bundles {
		out[a] = al.valueOf(a, a)
	}

	return out
}

// Owner returns the agent holding item, if any.
func (al *Allocation) Owner(item string) (string, bool) {
	i, ok := al.model.ItemIndex(item)
	if !ok || al.owner[i] == unowned {
		return "", false
	}

	return al.model.Agent(al.owner[i]), true
}

// ItemOwners maps every assigned item to its owner.
func (al *Allocation) ItemOwners() map[string]string {
	out := make(map[string]string, len(al.owner))
	for i, a := range al.owner {
		if a != unowned {
			out[al.model.Item(i)] = al.model.Agent(a)
		}
	}

	return out
}

// Bundles maps every agent to a copy of its bundle (canonical item order).
func (al *Allocation) Bundles() map[string][]string {
	out := make(map[string][]string, len(al.bundles))
	for a := range al.bundles {
		out[al.model.Agent(a)] = al.bundleLabels(a)
	}

	return out
}

// Unassigned lists the items nobody holds, in canonical order.
func (al *Allocation) Unassigned() []string {
	var out []string
	for i, a := range al.owner {
		if a == unowned {
			out = append(out, al.model.Item(i))
		}
	}

	return out
}

// Equal reports whether two allocations give the same agents the same
// bundles over the same agent and item labels, in the same canonical order. Values are not compared;
// use Utilities for that.
func (al *Allocation) Equal(other *Allocation) bool {
	if al == nil || other == nil {
		return al == other
	}
	if !sameLabels(al.model.Agents(), other.model.Agents()) || !sameLabels(al.model.Items(), other.model.Items()) {
		return false
	}
	for a := range al.bundles {
		label := al.model.Agent(a)
		ob, err := other.Bundle(label)
		if err != nil {
			return false
		}
		mine := al.bundleLabels(a)
		if len(mine) != len(ob) {
			return false
		}
		for k := range mine {
			if mine[k] != ob[k] {
				return false
			}
		}
	}

	return true
}

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}

	return true
}

// String renders the allocation in its canonical form.
func (al *Allocation) String() string {
	var sb strings.Builder
	for a := range al.bundles {
		sb.WriteString(al.model.Agent(a))
		sb.WriteString(" gets {")
		sb.WriteString(strings.Join(al.bundleLabels(a), ","))
		sb.WriteString("} with value ")
		sb.WriteString(FormatValue(al.valueOf(a, a)))
		sb.WriteString(".\n")
	}

	return sb.String()
}

// FormatValue renders a value the way String does: the shortest plain
// decimal that round-trips, never in exponent form ("14", "7.5", "-3",
// "1250000").
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (al *Allocation) agentIndex(agent string) (int, error) {
	a, ok := al.model.AgentIndex(agent)
	if !ok {
		return 0, &valuation.UnknownLabelError{Kind: valuation.AgentLabel, Label: agent}
	}

	return a, nil
}

// bundleLabels returns bundle a in canonical item order.
func (al *Allocation) bundleLabels(a int) []string {
	out := make([]string, 0, len(al.bundles[a]))
	for i, o := range al.owner {
		if o == a {
			out = append(out, al.model.Item(i))
		}
	}

	return out
}

// valueOf sums agent a's values over agent b's bundle.
func (al *Allocation) valueOf(a, b int) float64 {
	var sum float64
	for i, o := range al.owner {
		if o == b {
			sum += al.model.At(a, i)
		}
	}

	return sum
}
