package dateq_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/dateq"
)

// ExampleNew demonstrates the simplest possible search: three digits,
// default options.
func ExampleNew() {
	engine, err := dateq.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Generate(context.Background(), "123")
	if err != nil {
		log.Fatal(err)
	}

	for _, eq := range result.Equations {
		fmt.Println(eq)
	}
	// Output:
	// 1 + 2 = 3
}

// ExampleEngine_Generate searches a full date. The equation list for a
// date this size is long, so the example checks for one known identity
// instead of printing everything.
func ExampleEngine_Generate() {
	engine, err := dateq.New()
	if err != nil {
		log.Fatal(err)
	}

	result, err := engine.Generate(context.Background(), "09/05/2005")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Digits)
	for _, eq := range result.Equations {
		if eq.String() == "0 * 9 + 0 + 5 = 2 * 0 + 0 + 5" {
			fmt.Println("found:", eq)
			break
		}
	}
	// Output:
	// 09052005
	// found: 0 * 9 + 0 + 5 = 2 * 0 + 0 + 5
}
