// Package matching allocates items by repeated maximum-weight bipartite
// matching between agents and the items still on the table.
//
// 🚀 Iterated maximum matching
//
//	Each round builds the bipartite graph agents × remaining items with
//	edge weight = the agent's (optionally weighted) value, finds a
//	maximum-weight matching in which every agent takes at most one item,
//	gives every matched agent its item, and removes those items. Rounds
//	repeat until no item is left or a round matches nobody.
//
//	The optimum is per round, not global: the final allocation is the
//	union of successive per-round optimal matchings.
//
// ✨ Options:
//   - WithItems           — allocate only this subset of items.
//   - WithTracer          — receive one INFO event per round, plus a
//     DEBUG event listing the items on the table at its start.
//   - WithMaxCardinality  — (default true) match min(#agents, #items)
//     pairs each round, even at a loss; false lets an agent pass
//     instead of taking a negative item, so rounds may stop with
//     items left. A zero-valued item is still taken over a pass.
//   - WithAgentWeights    — scale an agent's values in the objective.
//
// ⚙️ Usage:
//
//	al, err := matching.IteratedMaximumMatching(model,
//	    matching.WithTracer(tr))
//
// Termination: every round with at least one agent and one item matches at
// least one pair when max cardinality is on, so at most |items| rounds run.
// A round with zero matches ends the run; the leftover items stay
// unassigned and a WARNING event names them.
//
// The assignment solver (MaxWeightAssignment) is a Hungarian method with
// potentials. Among equally good matchings it picks, agent by agent in
// canonical order, the earliest item in canonical order, so results never
// depend on solver internals. That costs O(n·m) extra solves per round.
package matching
