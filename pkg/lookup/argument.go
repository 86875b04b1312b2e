package lookup

import "github.com/oisee/bf-zkvm/pkg/field"

// BatchSize computes the deterministic LogUp batch size from a chip's
// max constraint degree: log_quotient_degree = ceil(log2(degree-1)),
// floored at 1, so B = 2^log_quotient_degree.
func BatchSize(maxConstraintDegree int) int {
	d := maxConstraintDegree - 1
	if d < 1 {
		d = 1
	}
	log := 0
	for (1 << uint(log)) < d {
		log++
	}
	if log < 0 {
		log = 0
	}
	return 1 << uint(log)
}

// PermutationTrace is the extension-field permutation matrix for one
// chip: one batch column per group of B interactions in a row, plus the
// trailing running-sum column. Row i's running sum equals the sum of
// row i's batch entries plus row i-1's running sum (row 0: just its own
// batch sum), and the last row's running sum is the chip's cumulative
// sum.
type PermutationTrace struct {
	NumBatchCols int
	// Rows[i] has NumBatchCols batch entries followed by the running sum.
	Rows           [][]field.EF
	CumulativeSum  field.EF
}

// entryFingerprint computes the signed per-interaction LogUp entry
// m/f(v) (sign folded into m), the rational term every batch sums.
func entryFingerprint(alpha, beta field.EF, in Interaction) field.EF {
	f := Fingerprint(alpha, beta, in.Bus, in.Values)
	inv := f.Inv()
	signed := in.SignedMultiplicity()
	return inv.MulBase(signed)
}

// BuildPermutationTrace batches each row's interactions into groups of
// batchSize and accumulates the running sum down the rows. Rows with no
// interactions (padding, or real rows that simply don't touch any bus
// this chip owns) contribute zero batch entries and don't move the
// running sum, which is what lets padding rows satisfy every lookup
// trivially.
func BuildPermutationTrace(interactionsPerRow [][]Interaction, alpha, beta field.EF, batchSize int) PermutationTrace {
	height := len(interactionsPerRow)
	maxInteractions := 0
	for _, row := range interactionsPerRow {
		if len(row) > maxInteractions {
			maxInteractions = len(row)
		}
	}
	numBatches := (maxInteractions + batchSize - 1) / batchSize
	if numBatches == 0 {
		numBatches = 1
	}

	pt := PermutationTrace{NumBatchCols: numBatches, Rows: make([][]field.EF, height)}
	running := field.EFZero
	for i, row := range interactionsPerRow {
		entries := make([]field.EF, numBatches+1)
		for b := 0; b < numBatches; b++ {
			sum := field.EFZero
			start := b * batchSize
			if start > len(row) {
				start = len(row)
			}
			end := start + batchSize
			if end > len(row) {
				end = len(row)
			}
			for _, in := range row[start:max(start, end)] {
				sum = sum.Add(entryFingerprint(alpha, beta, in))
			}
			entries[b] = sum
			running = running.Add(sum)
		}
		entries[numBatches] = running
		pt.Rows[i] = entries
	}
	pt.CumulativeSum = running
	return pt
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// GlobalCumulativeSumCheck is the sole cross-chip constraint: the sum of
// every chip's cumulative sum must be zero in the extension field.
func GlobalCumulativeSumCheck(cumulativeSums []field.EF) bool {
	total := field.EFZero
	for _, cs := range cumulativeSums {
		total = total.Add(cs)
	}
	return total.IsZero()
}
