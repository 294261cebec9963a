package fairalloc_test

import (
	"fmt"

	"github.com/katalvlaran/fairalloc"
	"github.com/katalvlaran/fairalloc/trace"
	"github.com/katalvlaran/fairalloc/valuation"
)

// ExampleAllocate runs round robin on labelled vectors; items are positions.
func ExampleAllocate() {
	al, err := fairalloc.Allocate(
		valuation.LabeledVectors{"Ami": {8, 7, 6, 5}, "Tami": {12, 8, 4, 2}},
		fairalloc.RoundRobin,
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(al)
	// Output:
	// Ami gets {0,2} with value 14.
	// Tami gets {1,3} with value 10.
}

// ExampleAllocate_matching picks the algorithm by name and prints the rounds.
func ExampleAllocate_matching() {
	algo, _ := fairalloc.Lookup("iterated_maximum_matching")
	al, _ := fairalloc.Allocate(
		valuation.NestedMapping{
			"Ami":  {"green": 8, "red": 7, "blue": 6, "yellow": 5},
			"Tami": {"green": 12, "red": 8, "blue": 4, "yellow": 2},
		},
		algo,
		fairalloc.WithNormalize(valuation.WithItems("green", "red", "blue", "yellow")),
		fairalloc.WithListener(func(ev trace.Event) { fmt.Println(ev.Message()) }, trace.LevelInfo),
	)
	fmt.Print(al)
	// Output:
	// round 1: [Ami:red=7 Tami:green=12]
	// round 2: [Ami:yellow=5 Tami:blue=4]
	// Ami gets {red,yellow} with value 12.
	// Tami gets {green,blue} with value 16.
}
