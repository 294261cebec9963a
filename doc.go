// Package fairalloc divides indivisible items among agents who value them
// differently — from raw valuation input to a rendered, queryable
// allocation.
//
// 🚀 What is fairalloc?
//
//	A small, deterministic, pure-Go library that brings together:
//		• Input normalization: nested maps, labelled vectors or plain matrices
//		• A canonical valuation model with stable agent/item order
//		• Allocations with own-value and cross-value queries
//		• Round-robin allocation (greedy turns, canonical tie-break)
//		• Iterated maximum matching (Hungarian assignment per round)
//		• Structured tracing of every decision through scoped listeners
//
// ✨ Why choose fairalloc?
//
//   - One entry point – Allocate(input, algorithm, options…)
//   - Reproducible – fixed tie-breaks, identical output with or without tracing
//   - Pluggable – Register your own Algorithm next to the built-ins
//   - Observable – attach a trace.Listener or a logr.Logger per call
//
// Under the hood, everything is organized in subpackages:
//
//	valuation/  — Model, input shapes, Normalize, YAML/JSON Decode
//	allocation/ — Allocation: bundles, values, canonical rendering
//	trace/      — Tracer, Event, Listener, LogrListener
//	roundrobin/ — RoundRobin
//	matching/   — MaxWeightAssignment, IteratedMaximumMatching
//
// Quick example:
//
//	al, err := fairalloc.Allocate(
//	    valuation.LabeledVectors{"Ami": {8, 7, 6, 5}, "Tami": {12, 8, 4, 2}},
//	    fairalloc.RoundRobin,
//	)
//	fmt.Print(al)
//	// Ami gets {0,2} with value 14.
//	// Tami gets {1,3} with value 10.
//
// A command-line front end lives in cmd/fairalloc.
package fairalloc
