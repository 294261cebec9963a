package valuation

import (
	"errors"
	"fmt"
)

// Sentinel errors for valuation input handling.
var (
	// ErrShape indicates malformed or non-rectangular valuation input.
	ErrShape = errors.New("valuation: malformed input shape")

	// ErrUnknownLabel indicates a label that is absent from the model domain.
	ErrUnknownLabel = errors.New("valuation: unknown label")
)

// ShapeError describes why an input cannot be turned into a rectangular model.
//
// Agent is the offending agent label when one is known. Want/Got carry the
// expected and actual row length for ragged positional inputs (both zero
// otherwise).
type ShapeError struct {
	Reason string
	Agent  string
	Want   int
	Got    int
}

func (e *ShapeError) Error() string {
	switch {
	case e.Agent != "" && (e.Want != 0 || e.Got != 0):
		return fmt.Sprintf("valuation: %s: agent %q has %d values, want %d", e.Reason, e.Agent, e.Got, e.Want)
	case e.Agent != "":
		return fmt.Sprintf("valuation: %s (agent %q)", e.Reason, e.Agent)
	default:
		return fmt.Sprintf("valuation: %s", e.Reason)
	}
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// LabelKind tells agent labels from item labels in UnknownLabelError.
type LabelKind string

const (
	// AgentLabel marks an agent label.
	AgentLabel LabelKind = "agent"
	// ItemLabel marks an item label.
	ItemLabel LabelKind = "item"
)

// UnknownLabelError is returned when a requested agent or item label is not
// part of the input domain. It matches both ErrUnknownLabel and ErrShape.
type UnknownLabelError struct {
	Kind  LabelKind
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("valuation: unknown %s %q", e.Kind, e.Label)
}

// Is reports whether target is ErrUnknownLabel or ErrShape.
func (e *UnknownLabelError) Is(target error) bool {
	return target == ErrUnknownLabel || target == ErrShape
}
