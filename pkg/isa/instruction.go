package isa

import "fmt"

// Instruction is a decoded opcode plus its single auxiliary operand.
// OpA is zero for every opcode except LoopStart/LoopEnd, where it holds
// the program index one past the matching bracket (see Parse's
// bracket-resolution pass).
type Instruction struct {
	Opcode Opcode
	OpA    uint32
}

func (i Instruction) String() string {
	if i.Opcode.IsBracket() {
		return fmt.Sprintf("%s -> %d", i.Opcode, i.OpA)
	}
	return i.Opcode.String()
}
