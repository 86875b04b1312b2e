// Package field implements the base prime field and its quartic extension
// used by every chip's trace and AIR. The modulus matches KoalaBear
// (2^31 - 2^24 + 1), a 31-bit prime chosen so values fit comfortably in a
// uint32 with room for one extra carry bit during addition.
package field

// Modulus is the KoalaBear prime 2^31 - 2^24 + 1.
const Modulus uint64 = 2130706433

// F is an element of the base field, always kept in [0, Modulus).
type F uint32

// Zero and One are the additive and multiplicative identities.
var (
	Zero = F(0)
	One  = F(1)
)

// FromU64 reduces x modulo the field prime.
func FromU64(x uint64) F {
	return F(x % Modulus)
}

// FromInt reduces a signed value, wrapping negatives into [0, Modulus).
func FromInt(x int64) F {
	m := int64(Modulus)
	x %= m
	if x < 0 {
		x += m
	}
	return F(x)
}

func (a F) Add(b F) F {
	s := uint64(a) + uint64(b)
	if s >= Modulus {
		s -= Modulus
	}
	return F(s)
}

func (a F) Sub(b F) F {
	if a >= b {
		return F(uint64(a) - uint64(b))
	}
	return F(Modulus - uint64(b) + uint64(a))
}

func (a F) Neg() F {
	if a == 0 {
		return 0
	}
	return F(Modulus) - a
}

func (a F) Mul(b F) F {
	return FromU64(uint64(a) * uint64(b))
}

// Exp computes a^e via square-and-multiply.
func (a F) Exp(e uint64) F {
	result := One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		e >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse via Fermat's little theorem.
// Panics on zero, matching the AIR convention that inverses are only ever
// witnessed for values already constrained nonzero.
func (a F) Inv() F {
	if a == 0 {
		panic("field: inverse of zero")
	}
	return a.Exp(Modulus - 2)
}

func (a F) IsZero() bool { return a == 0 }

func (a F) Equal(b F) bool { return a == b }

func (a F) Uint32() uint32 { return uint32(a) }

func (a F) String() string {
	return uintToStr(uint64(a))
}

func uintToStr(x uint64) string {
	if x == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for x > 0 {
		i--
		buf[i] = byte('0' + x%10)
		x /= 10
	}
	return string(buf[i:])
}
