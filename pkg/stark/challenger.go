// Package stark holds the machine's external collaborators: the
// Challenger transcript, the polynomial commitment scheme (PCS), and
// the constraint evaluator that folds a chip's AIR into the
// quotient-polynomial check. The production system delegates these to
// a Two-Adic FRI PCS over a Poseidon2 sponge; no such crate is
// fetchable from this corpus (see DESIGN.md), so this package commits
// to a minimal Merkle + Fiat-Shamir substitute that exercises the same
// interfaces and the same proving/verifying control flow.
package stark

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/oisee/bf-zkvm/pkg/field"
)

// Challenger absorbs prover-committed data and squeezes verifier
// challenges, standing in for the sponge-based Fiat-Shamir transcript
// (spec §4.12 steps 3-8).
type Challenger struct {
	state [32]byte
}

func NewChallenger() *Challenger {
	return &Challenger{}
}

func (c *Challenger) absorb(b []byte) {
	h := sha256.New()
	h.Write(c.state[:])
	h.Write(b)
	copy(c.state[:], h.Sum(nil))
}

// ObserveCommitment absorbs a commitment digest into the transcript.
func (c *Challenger) ObserveCommitment(commit Commitment) {
	c.absorb(commit[:])
}

// ObserveExtension absorbs a witnessed extension-field scalar, e.g. a
// per-chip cumulative sum (spec §4.12 step 5).
func (c *Challenger) ObserveExtension(e field.EF) {
	for _, limb := range e {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], limb.Uint32())
		c.absorb(buf[:])
	}
}

// SampleExtension squeezes the next extension-field challenge and
// ratchets the transcript state forward.
func (c *Challenger) SampleExtension() field.EF {
	var out field.EF
	for i := range out {
		h := sha256.New()
		h.Write(c.state[:])
		h.Write([]byte{byte(i)})
		digest := h.Sum(nil)
		out[i] = field.FromU64(binary.LittleEndian.Uint64(digest[:8]) % field.Modulus)
	}
	for _, limb := range out {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], limb.Uint32())
		c.absorb(buf[:])
	}
	return out
}

// SampleBase squeezes a base-field challenge (used for query indices in
// a real FRI PCS; the Merkle stand-in reduces it to the row index it
// opens).
func (c *Challenger) SampleBase() field.F {
	h := sha256.New()
	h.Write(c.state[:])
	digest := h.Sum(nil)
	c.absorb(digest)
	return field.FromU64(binary.LittleEndian.Uint64(digest[:8]) % field.Modulus)
}
