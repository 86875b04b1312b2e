// Package cpu implements the CPU chip: it binds every executed cycle to
// a program instruction, tracks clk/pc transitions, performs the
// cycle's memory access(es), and dispatches the row to exactly one
// specialized chip via the lookup buses (spec §4.3).
package cpu

import "github.com/oisee/bf-zkvm/pkg/field"

// Column layout, in the fixed order Row.ToSlice/FromSlice use.
const (
	colClk16 = iota
	colClk8
	colPc
	colNextPc
	colMp
	colNextMp
	colMv
	colNextMv
	colOpcode
	colOpA
	colMvAccessValue
	colMvAccessPrevValue
	colMvAccessTimestamp
	colMvAccessPrevTimestamp
	colHasMvAccess
	colNextMvAccessValue
	colNextMvAccessPrevValue
	colNextMvAccessTimestamp
	colNextMvAccessPrevTimestamp
	colHasNextMvAccess
	colIsMvImmutable
	colIsAlu
	colIsJump
	colIsMemoryInstr
	colIsIO
	colIsReal
	numCols
)

const Width = numCols

// Row is the CPU chip's fixed-width row, field-by-field.
type Row struct {
	Clk16, Clk8               field.F
	Pc, NextPc                field.F
	Mp, NextMp                field.F
	Mv, NextMv                field.F
	Opcode, OpA               field.F
	MvAccessValue             field.F
	MvAccessPrevValue         field.F
	MvAccessTimestamp         field.F
	MvAccessPrevTimestamp     field.F
	HasMvAccess               field.F
	NextMvAccessValue         field.F
	NextMvAccessPrevValue     field.F
	NextMvAccessTimestamp     field.F
	NextMvAccessPrevTimestamp field.F
	HasNextMvAccess           field.F
	IsMvImmutable             field.F
	IsAlu, IsJump             field.F
	IsMemoryInstr, IsIO       field.F
	IsReal                    field.F
}

func (r Row) ToSlice() []field.F {
	s := make([]field.F, numCols)
	s[colClk16] = r.Clk16
	s[colClk8] = r.Clk8
	s[colPc] = r.Pc
	s[colNextPc] = r.NextPc
	s[colMp] = r.Mp
	s[colNextMp] = r.NextMp
	s[colMv] = r.Mv
	s[colNextMv] = r.NextMv
	s[colOpcode] = r.Opcode
	s[colOpA] = r.OpA
	s[colMvAccessValue] = r.MvAccessValue
	s[colMvAccessPrevValue] = r.MvAccessPrevValue
	s[colMvAccessTimestamp] = r.MvAccessTimestamp
	s[colMvAccessPrevTimestamp] = r.MvAccessPrevTimestamp
	s[colHasMvAccess] = r.HasMvAccess
	s[colNextMvAccessValue] = r.NextMvAccessValue
	s[colNextMvAccessPrevValue] = r.NextMvAccessPrevValue
	s[colNextMvAccessTimestamp] = r.NextMvAccessTimestamp
	s[colNextMvAccessPrevTimestamp] = r.NextMvAccessPrevTimestamp
	s[colHasNextMvAccess] = r.HasNextMvAccess
	s[colIsMvImmutable] = r.IsMvImmutable
	s[colIsAlu] = r.IsAlu
	s[colIsJump] = r.IsJump
	s[colIsMemoryInstr] = r.IsMemoryInstr
	s[colIsIO] = r.IsIO
	s[colIsReal] = r.IsReal
	return s
}

func FromSlice(s []field.F) Row {
	return Row{
		Clk16: s[colClk16], Clk8: s[colClk8],
		Pc: s[colPc], NextPc: s[colNextPc],
		Mp: s[colMp], NextMp: s[colNextMp],
		Mv: s[colMv], NextMv: s[colNextMv],
		Opcode: s[colOpcode], OpA: s[colOpA],
		MvAccessValue: s[colMvAccessValue], MvAccessPrevValue: s[colMvAccessPrevValue],
		MvAccessTimestamp: s[colMvAccessTimestamp], MvAccessPrevTimestamp: s[colMvAccessPrevTimestamp],
		HasMvAccess: s[colHasMvAccess],
		NextMvAccessValue: s[colNextMvAccessValue], NextMvAccessPrevValue: s[colNextMvAccessPrevValue],
		NextMvAccessTimestamp: s[colNextMvAccessTimestamp], NextMvAccessPrevTimestamp: s[colNextMvAccessPrevTimestamp],
		HasNextMvAccess: s[colHasNextMvAccess],
		IsMvImmutable:   s[colIsMvImmutable],
		IsAlu:           s[colIsAlu], IsJump: s[colIsJump],
		IsMemoryInstr: s[colIsMemoryInstr], IsIO: s[colIsIO],
		IsReal: s[colIsReal],
	}
}
