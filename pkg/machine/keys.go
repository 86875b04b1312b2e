package machine

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/isa"
	"github.com/oisee/bf-zkvm/pkg/stark"
)

// ChipInfo is the per-chip metadata the verifying key needs to recheck
// a proof's shape without holding the full proving key (spec §6
// "persisted state layout").
type ChipInfo struct {
	Name  string
	Width int
}

// ProvingKey holds everything Prove needs: the parsed program, the
// fixed chip set, and a commitment to the Program chip's preprocessed
// columns (pc, opcode, op_a — deterministic from the program alone).
type ProvingKey struct {
	Program            *isa.Program
	Chips              []common.Chip
	PreprocessedCommit stark.Commitment
	preprocessedTrace  common.Matrix
}

// VerifyingKey holds only the commitment and chip metadata a verifier
// needs (spec §6 "persisted state layout").
type VerifyingKey struct {
	ChipOrder          []string
	ChipInfos          []ChipInfo
	PreprocessedCommit stark.Commitment
}

// Setup generates the Program chip's preprocessed trace and commits to
// it, producing the (ProvingKey, VerifyingKey) pair (spec §4.12
// "Setup").
func Setup(source string) (*ProvingKey, *VerifyingKey, error) {
	program, err := isa.Parse(source)
	if err != nil {
		return nil, nil, err
	}

	chips := ChipOrder()
	pcs := stark.NewMerklePCS()
	preprocessed := preprocessedProgramTrace(program)
	commit, _, err := pcs.Commit([]common.Matrix{preprocessed})
	if err != nil {
		return nil, nil, err
	}

	infos := make([]ChipInfo, len(chips))
	order := make([]string, len(chips))
	for i, c := range chips {
		infos[i] = ChipInfo{Name: c.Name(), Width: c.Width()}
		order[i] = c.Name()
	}

	pk := &ProvingKey{Program: program, Chips: chips, PreprocessedCommit: commit, preprocessedTrace: preprocessed}
	vk := &VerifyingKey{ChipOrder: order, ChipInfos: infos, PreprocessedCommit: commit}
	return pk, vk, nil
}

// preprocessedProgramTrace builds the (pc, opcode, op_a) columns that
// are fixed by the program alone, independent of any execution; the
// Program chip's main trace (pkg/chips/program) rebuilds these same
// three columns at proving time and adds the run-dependent
// multiplicity column.
func preprocessedProgramTrace(p *isa.Program) common.Matrix {
	m := common.NewMatrix(3, common.NextPow2(p.Len()))
	for pc := 0; pc < p.Len(); pc++ {
		instr, _ := p.At(uint32(pc))
		row := m.Row(pc)
		row[0] = field.FromU64(uint64(pc))
		row[1] = field.FromU64(uint64(instr.Opcode))
		row[2] = field.FromU64(uint64(instr.OpA))
	}
	return m
}
