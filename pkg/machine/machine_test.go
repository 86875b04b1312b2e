package machine

import (
	"testing"

	"github.com/oisee/bf-zkvm/pkg/field"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	pk, vk, err := Setup(">++++++++[<+++++++++>-]<.")
	if err != nil {
		t.Fatal(err)
	}
	proof, err := Prove(pk, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(proof, vk); err != nil {
		t.Fatalf("expected honest proof to verify, got: %v", err)
	}
}

func TestVerifyRejectsTamperedTrace(t *testing.T) {
	pk, vk, err := Setup(">++++++++[<+++++++++>-]<.")
	if err != nil {
		t.Fatal(err)
	}
	proof, err := Prove(pk, nil)
	if err != nil {
		t.Fatal(err)
	}

	proof.Shard.Traces[0].Values[0] = proof.Shard.Traces[0].Values[0].Add(field.One)

	if err := Verify(proof, vk); err == nil {
		t.Fatal("expected tampered trace to fail verification")
	}
}

func TestVerifyRejectsForgedCumulativeSum(t *testing.T) {
	pk, vk, err := Setup(">++++++++[<+++++++++>-]<.")
	if err != nil {
		t.Fatal(err)
	}
	proof, err := Prove(pk, nil)
	if err != nil {
		t.Fatal(err)
	}

	proof.Shard.CumulativeSums[CpuChipName] = proof.Shard.CumulativeSums[CpuChipName].Add(field.EFOne)

	if err := Verify(proof, vk); err == nil {
		t.Fatal("expected forged cumulative sum to fail verification")
	}
}
