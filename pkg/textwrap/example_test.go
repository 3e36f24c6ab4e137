package textwrap_test

import (
	"fmt"

	"github.com/matzehuels/cardpress/pkg/textwrap"
)

func ExampleWrap() {
	for _, line := range textwrap.Wrap("Deal 2 damage to any target.", 10) {
		fmt.Printf("%q\n", line)
	}
	// Output:
	// "Deal 2"
	// "damage to"
	// "any"
	// "target."
}

func ExampleWrap_paragraphs() {
	// A blank paragraph stays as one empty line.
	fmt.Println(len(textwrap.Wrap("Flying\n\nHaste", 20)))
	// Output:
	// 3
}
