package lookup

import "github.com/oisee/bf-zkvm/pkg/field"

// Interaction is one row's contribution to a bus: a tuple of base-field
// values sent (contributing +mult) or received (contributing -mult).
// Padding rows must contribute Mult = 0, which automatically satisfies
// every lookup trivially.
type Interaction struct {
	Bus    Bus
	Values []field.F
	Mult   field.F
	IsSend bool
}

// Fingerprint computes f(v) = alpha + sum_i beta^i * tag_i where tag_0 is
// the bus index and tag_1.. are the tuple values, the single rational
// expression the whole LogUp argument reduces multiset membership to.
func Fingerprint(alpha, beta field.EF, bus Bus, values []field.F) field.EF {
	f := alpha
	power := field.EFOne
	f = f.Add(power.MulBase(field.FromU64(uint64(bus))))
	power = power.Mul(beta)
	for _, v := range values {
		f = f.Add(power.MulBase(v))
		power = power.Mul(beta)
	}
	return f
}

// SignedMultiplicity returns the multiplicity as signed contribution:
// +Mult for a send, -Mult for a receive.
func (in Interaction) SignedMultiplicity() field.F {
	if in.IsSend {
		return in.Mult
	}
	return in.Mult.Neg()
}
