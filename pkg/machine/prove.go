package machine

import (
	"log/slog"
	"math/bits"

	"github.com/oisee/bf-zkvm/pkg/chips/bytechip"
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/debug"
	"github.com/oisee/bf-zkvm/pkg/executor"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
	"github.com/oisee/bf-zkvm/pkg/stark"
)

// ShardProof is the proof material for one execution shard: the single
// shard this machine ever produces, since the spec's clk < 2^24 bound
// (spec §5) is never split across shards here.
type ShardProof struct {
	ChipOrder      []string
	MainCommit     stark.Commitment
	PermCommit     stark.Commitment
	QuotientCommit stark.Commitment
	CumulativeSums map[string]field.EF
	Openings       map[string]stark.Opening
	CpuHeight      int
	// Traces carries the full per-chip main traces, in ChipOrder. The
	// stand-in MerklePCS (see DESIGN.md) opens by revealing rows
	// outright rather than by a succinct FRI argument, so the verifier
	// needs the traces themselves to recompute commitments and replay
	// the constraint/lookup checks Prove performed.
	Traces []common.Matrix
}

// Proof is the SDK-level proof artifact (spec §6): the shard proof
// plus the public inputs/outputs it attests to.
type Proof struct {
	Shard        ShardProof
	Stdin        []byte
	PublicValues []byte
}

// Prove runs the proving flow in spec §4.12's eight steps, mediated by
// pkg/stark's abstracted PCS and Challenger.
func Prove(pk *ProvingKey, stdin []byte) (*Proof, error) {
	// 1. Run executor -> record.
	record, err := executor.Run(pk.Program, stdin)
	if err != nil {
		return nil, err
	}
	output, err := executor.Output(pk.Program, stdin)
	if err != nil {
		return nil, err
	}

	// 2. For each chip, generate dependencies (byte-lookup events),
	// then the main trace. The byte_lookups multiset merges
	// commutatively (spec §5), but the Byte chip reads its final
	// multiplicities from it, so its trace is generated after every
	// other chip has added its range-check requests.
	traces := make([]common.Matrix, len(pk.Chips))
	genOrder := make([]int, 0, len(pk.Chips))
	for i, c := range pk.Chips {
		if _, isByte := c.(bytechip.Chip); !isByte {
			genOrder = append(genOrder, i)
		}
	}
	for i, c := range pk.Chips {
		if _, isByte := c.(bytechip.Chip); isByte {
			genOrder = append(genOrder, i)
		}
	}
	for _, i := range genOrder {
		c := pk.Chips[i]
		t, err := c.GenerateTrace(record)
		if err != nil {
			return nil, err
		}
		traces[i] = t
		// BF_DEBUG-gated self-check (spec §6/§7): never gates the proof
		// itself, only logs a prover-side constraint violation.
		debug.CheckChip(slog.Default(), c, t)
	}

	pcs := stark.NewMerklePCS()
	challenger := stark.NewChallenger()

	// 3. Commit to main traces. Absorb commitment into challenger.
	mainCommit, mainData, err := pcs.Commit(traces)
	if err != nil {
		return nil, err
	}
	challenger.ObserveCommitment(mainCommit)

	// 4. Sample permutation challenges (alpha, beta).
	alpha := challenger.SampleExtension()
	beta := challenger.SampleExtension()

	// 5. For each chip, generate permutation trace and cumulative sum.
	// Absorb cumulative sums.
	cumulativeSums := make(map[string]field.EF, len(pk.Chips))
	for i, c := range pk.Chips {
		interactions := c.Interactions(traces[i])
		batchSize := lookup.BatchSize(c.MaxConstraintDegree())
		perm := lookup.BuildPermutationTrace(interactions, alpha, beta, batchSize)
		cumulativeSums[c.Name()] = perm.CumulativeSum
		challenger.ObserveExtension(perm.CumulativeSum)
	}

	// 6. Commit to permutation traces. Absorb. The stand-in PCS commits
	// to the cumulative sums themselves as a one-row-per-chip matrix,
	// since this module does not materialise full extension-field
	// permutation columns.
	permCommit, _, err := pcs.Commit([]common.Matrix{cumulativeSumMatrix(pk.Chips, cumulativeSums)})
	if err != nil {
		return nil, err
	}
	challenger.ObserveCommitment(permCommit)

	// 7. Sample constraint-folding challenge (gamma); commit to
	// quotient chunks.
	gamma := challenger.SampleExtension()
	ce := stark.NewConstraintEvaluator(gamma)
	quotientRows := make([][]field.F, len(pk.Chips))
	for i, c := range pk.Chips {
		folded := stark.EvaluateChip(c, traces[i], ce)
		quotientRows[i] = folded[:]
	}
	quotientMatrix := common.NewMatrix(len(field.EF{}), common.NextPow2(len(pk.Chips)))
	for i, row := range quotientRows {
		copy(quotientMatrix.Row(i), row)
	}
	quotientCommit, _, err := pcs.Commit([]common.Matrix{quotientMatrix})
	if err != nil {
		return nil, err
	}
	challenger.ObserveCommitment(quotientCommit)

	// 8. Sample out-of-domain point (zeta); open all commitments at
	// zeta (and next(zeta) is folded into Opening.Next by pkg/stark).
	zeta := challenger.SampleBase()
	openings, _, err := pcs.Open(mainData, traces, zeta)
	if err != nil {
		return nil, err
	}
	openingByChip := make(map[string]stark.Opening, len(pk.Chips))
	cpuHeight := 0
	for i, c := range pk.Chips {
		openingByChip[c.Name()] = openings[i]
		if c.Name() == CpuChipName {
			cpuHeight = traces[i].Height
		}
	}

	order := make([]string, len(pk.Chips))
	for i, c := range pk.Chips {
		order[i] = c.Name()
	}

	shard := ShardProof{
		ChipOrder:      order,
		MainCommit:     mainCommit,
		PermCommit:     permCommit,
		QuotientCommit: quotientCommit,
		CumulativeSums: cumulativeSums,
		Openings:       openingByChip,
		CpuHeight:      cpuHeight,
		Traces:         traces,
	}

	return &Proof{Shard: shard, Stdin: stdin, PublicValues: output}, nil
}

func cumulativeSumMatrix(chips []common.Chip, sums map[string]field.EF) common.Matrix {
	m := common.NewMatrix(len(field.EF{}), common.NextPow2(len(chips)))
	for i, c := range chips {
		s := sums[c.Name()]
		copy(m.Row(i), s[:])
	}
	return m
}

// Verify mirrors the proving flow (spec §4.12 "Verifying flow"): it
// replays the exact same Fiat-Shamir transcript Prove produced,
// recomputing every commitment, cumulative sum, and folded constraint
// from the shard's traces rather than trusting the values the proof
// merely claims. A forged proof with self-consistent but fabricated
// commitments/sums fails the moment its recomputed values diverge.
func Verify(proof *Proof, vk *VerifyingKey) error {
	shard := proof.Shard

	if len(shard.ChipOrder) != len(vk.ChipOrder) {
		return newErr(ChipOpeningLengthMismatch)
	}
	for i, name := range shard.ChipOrder {
		if vk.ChipOrder[i] != name {
			return newErr(InvalidShardProof)
		}
	}

	foundCpu := false
	for _, name := range shard.ChipOrder {
		if name == CpuChipName {
			foundCpu = true
		}
	}
	if !foundCpu {
		return newErr(MissingCpuInFirstShard)
	}

	if shard.CpuHeight > 0 {
		log := bits.Len(uint(shard.CpuHeight - 1))
		if log > MaxCpuLogDegree {
			return &VerificationError{Kind: CpuLogDegreeTooLarge, LogValue: log}
		}
	}

	if len(shard.Openings) != len(vk.ChipInfos) || len(shard.Traces) != len(vk.ChipInfos) {
		return newErr(ChipOpeningLengthMismatch)
	}

	chips := ChipOrder()
	if len(chips) != len(shard.ChipOrder) {
		return newErr(InvalidShardProof)
	}
	for i, info := range vk.ChipInfos {
		if chips[i].Name() != info.Name || chips[i].Width() != info.Width {
			return newErr(InvalidShardProof)
		}
		if shard.Traces[i].Width != info.Width {
			return newErr(InvalidShardProof)
		}
		opening, ok := shard.Openings[info.Name]
		if !ok || len(opening.Local) != info.Width {
			return newErr(ChipOpeningLengthMismatch)
		}
	}

	pcs := stark.NewMerklePCS()
	challenger := stark.NewChallenger()

	// Step 3: recommit to the supplied traces and bind them to the
	// claimed main commitment.
	mainCommit, _, err := pcs.Commit(shard.Traces)
	if err != nil || mainCommit != shard.MainCommit {
		return newErr(InvalidOpening)
	}
	challenger.ObserveCommitment(shard.MainCommit)

	// Step 4: sample the same permutation challenges Prove did.
	alpha := challenger.SampleExtension()
	beta := challenger.SampleExtension()

	// Step 5: recompute every chip's interactions and cumulative sum
	// from its trace, and check the proof's claimed sums match.
	recomputedSums := make(map[string]field.EF, len(chips))
	for i, c := range chips {
		interactions := c.Interactions(shard.Traces[i])
		batchSize := lookup.BatchSize(c.MaxConstraintDegree())
		perm := lookup.BuildPermutationTrace(interactions, alpha, beta, batchSize)
		recomputedSums[c.Name()] = perm.CumulativeSum
		challenger.ObserveExtension(perm.CumulativeSum)
	}
	for _, name := range shard.ChipOrder {
		claimed, ok := shard.CumulativeSums[name]
		if !ok || !claimed.Equal(recomputedSums[name]) {
			return newErr(InvalidShardProof)
		}
	}

	sum := field.EFZero
	for _, name := range vk.ChipOrder {
		sum = sum.Add(recomputedSums[name])
	}
	if !lookup.GlobalCumulativeSumCheck([]field.EF{sum}) {
		return newErr(CumulativeSumsNonZero)
	}

	// Step 6: recommit to the permutation (cumulative-sum) trace and
	// bind it to the claimed permutation commitment.
	permCommit, _, err := pcs.Commit([]common.Matrix{cumulativeSumMatrix(chips, recomputedSums)})
	if err != nil || permCommit != shard.PermCommit {
		return newErr(InvalidOpening)
	}
	challenger.ObserveCommitment(shard.PermCommit)

	// Step 7: sample the folding challenge and recompute every chip's
	// folded row/boundary constraints. Since every chip's Eval/Boundary
	// output is zero on a satisfying trace, the folded sum over gamma
	// powers must be exactly zero — this is the check the prior
	// bookkeeping-only Verify never performed.
	gamma := challenger.SampleExtension()
	ce := stark.NewConstraintEvaluator(gamma)
	quotientRows := make([][]field.F, len(chips))
	for i, c := range chips {
		folded := stark.EvaluateChip(c, shard.Traces[i], ce)
		if !folded.Equal(field.EFZero) {
			return newErr(InvalidShardProof)
		}
		quotientRows[i] = folded[:]
	}
	quotientMatrix := common.NewMatrix(len(field.EF{}), common.NextPow2(len(chips)))
	for i, row := range quotientRows {
		copy(quotientMatrix.Row(i), row)
	}
	quotientCommit, _, err := pcs.Commit([]common.Matrix{quotientMatrix})
	if err != nil || quotientCommit != shard.QuotientCommit {
		return newErr(InvalidOpening)
	}
	challenger.ObserveCommitment(shard.QuotientCommit)

	// Step 8: sample the opening point and check the proof's claimed
	// openings bind to MainCommit via the PCS's own Verify, which
	// recomputes the commitment and checks every opened row against
	// the matching trace row at the queried point.
	zeta := challenger.SampleBase()
	openingsInOrder := make([]stark.Opening, len(chips))
	for i, c := range chips {
		claimed, ok := shard.Openings[c.Name()]
		if !ok {
			return newErr(ChipOpeningLengthMismatch)
		}
		openingsInOrder[i] = claimed
	}
	if err := pcs.Verify(shard.MainCommit, shard.Traces, zeta, openingsInOrder, nil); err != nil {
		return newErr(InvalidOpening)
	}

	return nil
}
