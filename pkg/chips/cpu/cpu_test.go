package cpu

import (
	"testing"

	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/executor"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/isa"
)

func rowOrNil(trace common.Matrix, i int) []field.F {
	if i < 0 || i >= trace.Height {
		return nil
	}
	return trace.Row(i)
}

func TestEvalVanishesOnRealTrace(t *testing.T) {
	program, err := isa.Parse(">++++++++[<+++++++++>-]<.")
	if err != nil {
		t.Fatal(err)
	}
	record, err := executor.Run(program, nil)
	if err != nil {
		t.Fatal(err)
	}

	chip := Chip{}
	trace, err := chip.GenerateTrace(record)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < trace.Height; i++ {
		local := trace.Row(i)
		next := rowOrNil(trace, i+1)
		for j, c := range chip.Eval(local, next) {
			if !c.IsZero() {
				t.Fatalf("row %d constraint %d did not vanish: %v", i, j, c)
			}
		}
	}

	first := rowOrNil(trace, 0)
	last := rowOrNil(trace, trace.Height-1)
	for j, c := range chip.Boundary(first, last) {
		if !c.IsZero() {
			t.Fatalf("boundary constraint %d did not vanish: %v", j, c)
		}
	}
}
