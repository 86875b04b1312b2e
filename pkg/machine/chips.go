// Package machine orchestrates the eight chips into the proving and
// verifying pipeline described in spec §4.12: it owns chip ordering,
// key material, and the Setup/Prove/Verify control flow built on top
// of pkg/stark's abstracted PCS, Challenger, and ConstraintEvaluator.
package machine

import (
	"github.com/oisee/bf-zkvm/pkg/chips/addsub"
	"github.com/oisee/bf-zkvm/pkg/chips/bytechip"
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/chips/cpu"
	"github.com/oisee/bf-zkvm/pkg/chips/ioc"
	"github.com/oisee/bf-zkvm/pkg/chips/jump"
	"github.com/oisee/bf-zkvm/pkg/chips/memconsist"
	"github.com/oisee/bf-zkvm/pkg/chips/meminstr"
	"github.com/oisee/bf-zkvm/pkg/chips/program"
)

// ChipOrder fixes the machine's chip ordering (spec §4.12): "Cpu,
// Program, AddSub, Jump, Memory, ByteLookup, MemoryInstrs, IO".
func ChipOrder() []common.Chip {
	return []common.Chip{
		cpu.Chip{},
		program.Chip{},
		addsub.Chip{},
		jump.Chip{},
		memconsist.Chip{},
		bytechip.Chip{},
		meminstr.Chip{},
		ioc.Chip{},
	}
}

// CpuChipName must match cpu.Chip{}.Name(); verification requires this
// chip be present in every proof (spec: "check 'Cpu' chip appears").
const CpuChipName = "Cpu"

// MaxCpuLogDegree bounds how large a single shard's CPU trace may be;
// exceeding it surfaces as CpuLogDegreeTooLarge rather than silently
// producing an unprovable shard. clk is bounded by 2^24 (spec §5), and
// the CPU trace has at most one row per cycle.
const MaxCpuLogDegree = 24
