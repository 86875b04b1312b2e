package lookup

import (
	"testing"

	"github.com/oisee/bf-zkvm/pkg/field"
)

func TestBatchSizeFloorsAtOne(t *testing.T) {
	if got := BatchSize(1); got != 1 {
		t.Fatalf("BatchSize(1) = %d, want 1", got)
	}
	if got := BatchSize(2); got != 1 {
		t.Fatalf("BatchSize(2) = %d, want 1", got)
	}
	if got := BatchSize(3); got != 2 {
		t.Fatalf("BatchSize(3) = %d, want 2", got)
	}
}

// TestBalancedSendReceiveSumsToZero models one send and one matching
// receive of the same tuple with equal multiplicity: the defining
// property of the LogUp argument (spec §4.11 "global check").
func TestBalancedSendReceiveSumsToZero(t *testing.T) {
	alpha := field.EF{field.FromU64(7), field.FromU64(11), field.FromU64(13), field.FromU64(17)}
	beta := field.EF{field.FromU64(3), field.FromU64(5), field.FromU64(19), field.FromU64(23)}

	values := []field.F{field.FromU64(42), field.FromU64(9)}
	rows := [][]Interaction{
		{
			{Bus: MemoryBus, Values: values, Mult: field.FromU64(3), IsSend: true},
			{Bus: MemoryBus, Values: values, Mult: field.FromU64(3), IsSend: false},
		},
	}

	pt := BuildPermutationTrace(rows, alpha, beta, 1)
	if !pt.CumulativeSum.IsZero() {
		t.Fatalf("expected cumulative sum zero for balanced send/receive, got %v", pt.CumulativeSum)
	}
}

func TestUnbalancedInteractionIsNonZero(t *testing.T) {
	alpha := field.EF{field.FromU64(7), field.FromU64(11), field.FromU64(13), field.FromU64(17)}
	beta := field.EF{field.FromU64(3), field.FromU64(5), field.FromU64(19), field.FromU64(23)}

	values := []field.F{field.FromU64(42), field.FromU64(9)}
	rows := [][]Interaction{
		{{Bus: MemoryBus, Values: values, Mult: field.FromU64(1), IsSend: true}},
	}

	pt := BuildPermutationTrace(rows, alpha, beta, 1)
	if pt.CumulativeSum.IsZero() {
		t.Fatal("expected a lone send to leave a non-zero cumulative sum")
	}
}

func TestGlobalCumulativeSumCheck(t *testing.T) {
	zero := field.EFZero
	if !GlobalCumulativeSumCheck([]field.EF{zero, zero}) {
		t.Fatal("expected all-zero sums to pass")
	}
	one := field.EFOne
	if GlobalCumulativeSumCheck([]field.EF{zero, one}) {
		t.Fatal("expected a non-zero sum to fail")
	}
}
