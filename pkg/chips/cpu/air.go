package cpu

import "github.com/oisee/bf-zkvm/pkg/field"

func boolConstraint(x field.F) field.F {
	return x.Mul(field.One.Sub(x))
}

func (Chip) Eval(local, next []field.F) []field.F {
	l := FromSlice(local)
	var out []field.F

	out = append(out,
		boolConstraint(l.IsAlu),
		boolConstraint(l.IsJump),
		boolConstraint(l.IsMemoryInstr),
		boolConstraint(l.IsIO),
		boolConstraint(l.IsMvImmutable),
		boolConstraint(l.IsReal),
	)

	// is_real = is_alu + is_jump + is_memory_instr + is_io
	sumKinds := l.IsAlu.Add(l.IsJump).Add(l.IsMemoryInstr).Add(l.IsIO)
	out = append(out, l.IsReal.Sub(sumKinds))

	// mv_access is present on every real row except memory-instruction
	// cycles; next_mv_access only on ALU cycles.
	out = append(out, l.HasMvAccess.Sub(l.IsReal.Mul(field.One.Sub(l.IsMemoryInstr))))
	out = append(out, l.HasNextMvAccess.Sub(l.IsAlu))

	// is_mv_immutable => the primary access left the cell unchanged.
	out = append(out, l.IsMvImmutable.Mul(l.MvAccessValue.Sub(l.MvAccessPrevValue)))

	// mv/next_mv feed the Alu/Jump/IO bus sends; mv_access_value/
	// next_mv_access_value feed the Memory bus chain. Without these, the
	// two are unconstrained relative to each other and a prover could
	// dispatch a cell value to the specialized chips that the memory
	// chip never actually saw.
	out = append(out, l.HasMvAccess.Mul(l.Mv.Sub(l.MvAccessValue)))
	out = append(out, l.HasNextMvAccess.Mul(l.NextMv.Sub(l.NextMvAccessValue)))

	if next != nil {
		n := FromSlice(next)
		// Transitions only bind when the next row is itself real.
		out = append(out, n.IsReal.Mul(field.Join24(n.Clk16, n.Clk8).Sub(field.Join24(l.Clk16, l.Clk8).Add(field.FromU64(2)))))
		out = append(out, n.IsReal.Mul(n.Pc.Sub(l.NextPc)))
		// is_real is monotone non-increasing: once zero, stays zero.
		out = append(out, field.One.Sub(l.IsReal).Mul(n.IsReal))
	}

	return out
}

func (Chip) Boundary(first, last []field.F) []field.F {
	var out []field.F
	if first != nil {
		f := FromSlice(first)
		out = append(out, field.Join24(f.Clk16, f.Clk8), f.IsReal.Sub(field.One))
	}
	return out
}
