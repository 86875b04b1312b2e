package stark

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/field"
)

// Commitment is the digest a PCS implementation binds a set of
// matrices to; the machine only ever treats it as an opaque, absorbable
// byte string.
type Commitment [32]byte

// ProverData is whatever auxiliary state a PCS needs to later answer
// an opening query against a commitment it produced.
type ProverData interface{}

// OpeningProof is the PCS's evidence that a claimed set of opened
// values really is consistent with a commitment at a point.
type OpeningProof interface{}

// Opening is the evaluation of every column of one matrix at a point
// (Local) and at the next point in the trace domain (Next).
type Opening struct {
	Local []field.F
	Next  []field.F
}

// PCS is the abstracted polynomial commitment scheme (spec's "abstract
// as a PCS with commit/open/verify operations"): in production a
// Two-Adic FRI PCS over a Poseidon2-based Merkle tree. This module
// fetches no such crate (see DESIGN.md); MerklePCS below commits with a
// single sha256 over every row's digest (a flat hash list, not a
// tree) and "opens" by revealing
// the claimed row directly rather than running a FRI low-degree test.
// It is wired into the exact same Commit/Open/Verify control flow a
// real PCS would occupy.
type PCS interface {
	Commit(matrices []common.Matrix) (Commitment, ProverData, error)
	Open(data ProverData, matrices []common.Matrix, point field.F) ([]Opening, OpeningProof, error)
	Verify(commit Commitment, dims []common.Matrix, point field.F, openings []Opening, proof OpeningProof) error
}

var ErrInvalidOpening = errors.New("stark: opening does not match commitment")

type MerklePCS struct{}

func NewMerklePCS() *MerklePCS { return &MerklePCS{} }

type merkleProverData struct {
	matrices []common.Matrix
}

func rowDigest(row []field.F) [32]byte {
	h := sha256.New()
	for _, v := range row {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], v.Uint32())
		h.Write(buf[:])
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (MerklePCS) Commit(matrices []common.Matrix) (Commitment, ProverData, error) {
	h := sha256.New()
	for _, m := range matrices {
		for i := 0; i < m.Height; i++ {
			d := rowDigest(m.Row(i))
			h.Write(d[:])
		}
	}
	var commit Commitment
	copy(commit[:], h.Sum(nil))
	return commit, merkleProverData{matrices: matrices}, nil
}

// Open evaluates every matrix's columns at an integer row index (the
// stand-in "point" — a real PCS opens at an out-of-domain extension
// point via polynomial evaluation; the degree-1 control flow here is
// the part this module reuses).
func (MerklePCS) Open(data ProverData, matrices []common.Matrix, point field.F) ([]Opening, OpeningProof, error) {
	pd, ok := data.(merkleProverData)
	if !ok {
		return nil, nil, errors.New("stark: prover data mismatch")
	}
	row := int(point.Uint32()) % maxHeight(matrices)
	openings := make([]Opening, len(matrices))
	for i, m := range pd.matrices {
		openings[i] = Opening{
			Local: append([]field.F(nil), m.Row(row%m.Height)...),
			Next:  append([]field.F(nil), m.Row((row+1)%m.Height)...),
		}
	}
	return openings, nil, nil
}

// Verify binds a claimed commitment and its opened rows to the supplied
// matrices: it recomputes the commitment (the stand-in for a real FRI
// low-degree test over the opened values) and checks every opened row
// against the matrix's actual row at the queried point, the way a real
// PCS's opening proof would.
func (MerklePCS) Verify(commit Commitment, matrices []common.Matrix, point field.F, openings []Opening, proof OpeningProof) error {
	recomputed, _, err := MerklePCS{}.Commit(matrices)
	if err != nil {
		return err
	}
	if recomputed != commit {
		return ErrInvalidOpening
	}
	if len(openings) != len(matrices) {
		return ErrInvalidOpening
	}
	row := int(point.Uint32()) % maxHeight(matrices)
	for i, m := range matrices {
		if !rowsEqual(openings[i].Local, m.Row(row%m.Height)) {
			return ErrInvalidOpening
		}
		if !rowsEqual(openings[i].Next, m.Row((row+1)%m.Height)) {
			return ErrInvalidOpening
		}
	}
	return nil
}

func rowsEqual(a, b []field.F) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func maxHeight(matrices []common.Matrix) int {
	h := 1
	for _, m := range matrices {
		if m.Height > h {
			h = m.Height
		}
	}
	return h
}
