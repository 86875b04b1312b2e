package executor

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/oisee/bf-zkvm/pkg/isa"
)

func mustParse(t *testing.T, src string) *isa.Program {
	t.Helper()
	p, err := isa.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return p
}

func TestDeterministicReplay(t *testing.T) {
	program := mustParse(t, ">++++++++[<+++++++++>-]<.")
	r1, err := Run(program, nil)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Run(program, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := deep.Equal(r1.CpuEvents, r2.CpuEvents); diff != nil {
		t.Fatalf("two runs of the same program diverged: %v", diff)
	}
	if diff := deep.Equal(r1.MemoryEvents, r2.MemoryEvents); diff != nil {
		t.Fatalf("memory events diverged: %v", diff)
	}
}

func TestPrintA(t *testing.T) {
	program := mustParse(t, ">++++++++[<+++++++++>-]<.")
	out, err := Output(program, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) == 0 || out[0] != 'A' {
		t.Fatalf("expected first output byte 65 ('A'), got %v", out)
	}
}

func TestPointerMove(t *testing.T) {
	program := mustParse(t, ">><")
	record, err := Run(program, nil)
	if err != nil {
		t.Fatal(err)
	}
	last := record.CpuEvents[len(record.CpuEvents)-1]
	if last.NextMp != 1 {
		t.Fatalf("expected mem_ptr=1 after \">><\", got %d", last.NextMp)
	}
}

func TestAddSubThenOutput(t *testing.T) {
	program := mustParse(t, "++-.")
	out, err := Output(program, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 1 {
		t.Fatalf("expected stdout=[1], got %v", out)
	}
}

func TestLoopSkippedWhenCellZero(t *testing.T) {
	program := mustParse(t, "[----]")
	record, err := Run(program, []byte{1})
	if err != nil {
		t.Fatal(err)
	}
	if len(record.CpuEvents) != 1 {
		t.Fatalf("expected exactly one cycle (branch taken past the loop), got %d", len(record.CpuEvents))
	}
}

func TestReadThenEcho(t *testing.T) {
	program := mustParse(t, ",.")
	out, err := Output(program, []byte{1})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 1 {
		t.Fatalf("expected stdout=[1], got %v", out)
	}
}

func TestInputUnderflowIsError(t *testing.T) {
	program := mustParse(t, ",.")
	if _, err := Run(program, nil); err == nil {
		t.Fatal("expected an error when stdin is exhausted")
	}
}
