package executor

import (
	"fmt"

	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/isa"
)

// ExecutionErrorKind is a taxonomy of runtime failures. Only Execution is
// reachable today (input exhaustion on `,`); MemoryRead/MemoryWrite exist
// so a future memory-fault mode has somewhere to land without widening
// the public error surface.
type ExecutionErrorKind int

const (
	ErrKindExecution ExecutionErrorKind = iota
	ErrKindMemoryRead
	ErrKindMemoryWrite
)

type ExecutionError struct {
	Kind ExecutionErrorKind
	Msg  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("brainfuck: execution error: %s", e.Msg)
}

// Run deterministically executes program on input, emitting a complete
// event trace. It succeeds iff the program terminates (pc reaches
// len(instructions)).
func Run(program *isa.Program, input []byte) (*events.ExecutionRecord, error) {
	record := events.NewExecutionRecord(program)
	state := &ExecutionState{InputStream: input}
	mem := newMemoryController()

	for {
		instr, ok := program.At(state.Pc)
		if !ok {
			break // pc == len(instructions): terminated
		}

		if err := step(state, mem, record, instr); err != nil {
			return nil, err
		}
	}

	record.MemoryEvents = mem.drain()
	return record, nil
}

func step(state *ExecutionState, mem *memoryController, record *events.ExecutionRecord, instr isa.Instruction) error {
	pc := state.Pc
	clk := state.Clk
	mp := state.MemPtr
	nextPc := pc + 1

	cpuEvent := events.CpuEvent{
		Clk:    clk,
		Pc:     pc,
		NextPc: nextPc,
		Mp:     mp,
		NextMp: mp,
		Instr:  instr,
	}

	switch instr.Opcode {
	case isa.MemStepForward, isa.MemStepBackward:
		nextMp := mp + 1
		if instr.Opcode == isa.MemStepBackward {
			nextMp = mp - 1
		}
		state.MemPtr = nextMp

		cpuEvent.NextMp = nextMp
		cpuEvent.IsMem = true
		record.MemInstrEvents = append(record.MemInstrEvents, events.MemInstrEvent{
			Pc: pc, Clk: clk, Mp: mp, NextMp: nextMp,
			IsForward: instr.Opcode == isa.MemStepForward,
		})

	case isa.Add, isa.Sub:
		readRec := mem.read(mp, clk+1)
		mv := readRec.Value
		var nextMv uint8
		if instr.Opcode == isa.Add {
			nextMv = mv + 1
		} else {
			nextMv = mv - 1
		}
		writeRec := mem.write(mp, nextMv, clk+2)

		cpuEvent.Mv = mv
		cpuEvent.NextMv = nextMv
		cpuEvent.IsAlu = true
		cpuEvent.SrcAccess = &events.AccessRecord{
			Value: mv, Timestamp: clk + 1,
			PrevValue: mv, PrevTimestamp: readRec.PrevTimestamp,
		}
		cpuEvent.DstAccess = &events.AccessRecord{
			Value: nextMv, Timestamp: clk + 2,
			PrevValue: writeRec.PrevValue, PrevTimestamp: writeRec.PrevTimestamp, IsWrite: true,
		}
		record.AluEvents = append(record.AluEvents, events.AluEvent{
			Pc: pc, IsAdd: instr.Opcode == isa.Add, Mv: mv, NextMv: nextMv,
		})

	case isa.LoopStart, isa.LoopEnd:
		readRec := mem.read(mp, clk+1)
		mv := readRec.Value
		isLoopEnd := instr.Opcode == isa.LoopEnd
		takeBranch := (mv == 0 && !isLoopEnd) || (mv != 0 && isLoopEnd)
		if takeBranch {
			nextPc = instr.OpA
		}

		cpuEvent.NextPc = nextPc
		cpuEvent.Mv = mv
		cpuEvent.NextMv = mv
		cpuEvent.IsJump = true
		cpuEvent.SrcAccess = &events.AccessRecord{
			Value: mv, Timestamp: clk + 1,
			PrevValue: mv, PrevTimestamp: readRec.PrevTimestamp,
		}
		record.JumpEvents = append(record.JumpEvents, events.JumpEvent{
			Pc: pc, NextPc: nextPc, IsLoopEnd: isLoopEnd, Dst: instr.OpA, Mv: mv,
		})

	case isa.Input:
		if state.InputPtr >= len(state.InputStream) {
			return &ExecutionError{Kind: ErrKindExecution, Msg: "input stream exhausted"}
		}
		b := state.InputStream[state.InputPtr]
		writeRec := mem.write(mp, b, clk+1)
		state.InputPtr++

		cpuEvent.Mv = b
		cpuEvent.NextMv = b
		cpuEvent.IsIO = true
		cpuEvent.SrcAccess = &events.AccessRecord{
			Value: b, Timestamp: clk + 1,
			PrevValue: writeRec.PrevValue, PrevTimestamp: writeRec.PrevTimestamp, IsWrite: true,
		}
		record.IoEvents = append(record.IoEvents, events.IoEvent{Pc: pc, Mp: mp, Mv: b, IsInput: true})

	case isa.Output:
		readRec := mem.read(mp, clk+1)
		b := readRec.Value
		state.OutputStream = append(state.OutputStream, b)

		cpuEvent.Mv = b
		cpuEvent.NextMv = b
		cpuEvent.IsIO = true
		cpuEvent.SrcAccess = &events.AccessRecord{
			Value: b, Timestamp: clk + 1,
			PrevValue: b, PrevTimestamp: readRec.PrevTimestamp,
		}
		record.IoEvents = append(record.IoEvents, events.IoEvent{Pc: pc, Mp: mp, Mv: b, IsInput: false})

	default:
		return &ExecutionError{Kind: ErrKindExecution, Msg: fmt.Sprintf("unrecognised opcode %v", instr.Opcode)}
	}

	record.CpuEvents = append(record.CpuEvents, cpuEvent)

	state.Pc = nextPc
	state.Clk += 2
	state.GlobalClk++
	return nil
}

// Output runs the program purely for its output stream, the shape
// `execute` exposes at the SDK boundary.
func Output(program *isa.Program, input []byte) ([]byte, error) {
	record, err := Run(program, input)
	if err != nil {
		return nil, err
	}
	// Reconstruct the output stream from Output-kind IoEvents, since
	// ExecutionState itself is not retained past Run.
	out := make([]byte, 0, len(record.IoEvents))
	for _, ev := range record.IoEvents {
		if !ev.IsInput {
			out = append(out, ev.Mv)
		}
	}
	return out, nil
}
