/*
Package dateq finds arithmetic identities hiding in dates.

Given a string like "09/05/2005", it extracts the digit sequence,
splits it into every sensible grouping, builds arithmetic expressions
over the groups, and reports each way the sequence can be read as a
true equation, such as "0 * 9 + 0 + 5 = 2 * 0 + 0 + 5".

# Concept

The search is a deterministic pipeline: digits are partitioned into
consecutive groups, each split point divides a partition into a left
and a right side, both sides are expanded into candidate expressions
under several grouping strategies, and candidates whose values agree
within a tolerance become equations. Expressions that divide by zero,
take a factorial outside its domain, or leave the real line are
silently dropped and tallied. The same input and options always yield
the same equations in the same order, regardless of worker count.

# Key Features

  - Deterministic Search: results are reproducible and cache-friendly.
  - Operator Palettes: basic (+ - * /) or extended (adds ^ and root).
  - Lifecycle Hooks: observe partitions and equations as they happen.
  - Result Caching: plug any ResultStore (in-memory and Redis included).

# Usage

Initialize the engine with functional options and feed it date strings.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/dateq"
	)

	func main() {
		eng, err := dateq.New(dateq.WithFactorial(true))
		if err != nil {
			log.Fatal(err)
		}

		result, err := eng.Generate(context.Background(), "09/05/2005")
		if err != nil {
			log.Fatal(err)
		}

		for _, eq := range result.Equations {
			fmt.Println(eq)
		}
	}

For terminal sessions, Runner wraps the same engine in a read-eval
loop with pluggable IO and rendering.
*/
package dateq
