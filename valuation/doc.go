// Package valuation holds the canonical agents × items value model and the
// normalizer that builds it from the input shapes callers actually have.
//
// 🚀 What is a valuation model?
//
//	An ordered list of agent labels, an ordered list of item labels and a
//	dense |agents|×|items| table of additive values. Every algorithm in
//	fairalloc reads only this model, so the three accepted input shapes
//	collapse into one representation before any allocation starts.
//
// ✨ Accepted shapes:
//   - NestedMapping    — agent → item → value, all labels explicit.
//   - LabeledVectors   — agent → []value, items labelled "0", "1", …
//   - PositionalMatrix — [][]value, agents "Agent #0", … and items "0", …
//   - Ordered          — any of the above plus the order found in a
//     YAML/JSON document (see Decode).
//
// Canonical order:
//
//	Map keys are sorted (Go maps carry no order); positional labels follow
//	position; Ordered inputs keep document order. WithAgents / WithItems
//	restrict the model to an exact ordered subset and that order becomes
//	canonical.
//
// ⚙️ Usage:
//
//	m, err := valuation.Normalize(valuation.NestedMapping{
//	    "Ami":  {"green": 8, "red": 7},
//	    "Tami": {"green": 12, "red": 8},
//	}, valuation.WithItems("red", "green"))
//
// Errors:
//   - *ShapeError        — ragged rows, missing items, duplicate labels, NaN/Inf.
//   - *UnknownLabelError — a subset label is absent (also matches ErrShape).
//
// A Model is immutable after construction and may be read concurrently.
package valuation
