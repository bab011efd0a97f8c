package cyber_test

import (
	"fmt"

	"github.com/metasystem/steering/pkg/cyber"
)

func ExampleTotalPower() {
	// P = v × a × c
	fmt.Println(cyber.TotalPower(100, 0.8, 10))
	// Output: 800
}

func ExampleAxiologicalIntegrity() {
	fmt.Println(cyber.AxiologicalIntegrity(1, 1))
	fmt.Println(cyber.AxiologicalIntegrity(1, 0))
	fmt.Println(cyber.AxiologicalIntegrity(1, -1))
	// Output:
	// 1
	// 0.5
	// 0
}

func ExampleAnalyzeDistortion() {
	for _, in := range []float64{200, 100, 50} {
		a := cyber.AnalyzeDistortion(in, 100)
		fmt.Printf("%.1f %s\n", a.Coefficient, a.Classification)
	}
	// Output:
	// 2.0 propaganda
	// 1.0 neutral
	// 0.5 suppression
}
