package field

import "math/big"

// EF is an element of the degree-4 extension F[x]/(x^4 - nonResidue),
// represented as its coefficient vector c0 + c1*x + c2*x^2 + c3*x^3.
// Challenges (alpha, beta) and cumulative sums live here; the base trace
// never does.
type EF [4]F

// nonResidue is a fixed quartic non-residue used to close the extension's
// multiplication under reduction (x^4 = nonResidue).
const nonResidue uint64 = 3

var (
	EFZero = EF{}
	EFOne  = EF{One, 0, 0, 0}
)

// FromBase lifts a base-field element into the extension.
func FromBase(a F) EF {
	return EF{a, 0, 0, 0}
}

func (a EF) Add(b EF) EF {
	var r EF
	for i := range r {
		r[i] = a[i].Add(b[i])
	}
	return r
}

func (a EF) Sub(b EF) EF {
	var r EF
	for i := range r {
		r[i] = a[i].Sub(b[i])
	}
	return r
}

func (a EF) Neg() EF {
	var r EF
	for i := range r {
		r[i] = a[i].Neg()
	}
	return r
}

// Mul multiplies two extension elements via schoolbook convolution
// followed by reduction of degree >= 4 terms using x^4 = nonResidue.
func (a EF) Mul(b EF) EF {
	var conv [7]F
	for i := 0; i < 4; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			conv[i+j] = conv[i+j].Add(a[i].Mul(b[j]))
		}
	}
	nr := FromU64(nonResidue)
	var r EF
	for i := 0; i < 4; i++ {
		r[i] = conv[i]
	}
	for i := 4; i < 7; i++ {
		if conv[i] == 0 {
			continue
		}
		r[i-4] = r[i-4].Add(conv[i].Mul(nr))
	}
	return r
}

func (a EF) MulBase(b F) EF {
	var r EF
	for i := range r {
		r[i] = a[i].Mul(b)
	}
	return r
}

func (a EF) IsZero() bool {
	return a[0] == 0 && a[1] == 0 && a[2] == 0 && a[3] == 0
}

func (a EF) Equal(b EF) bool {
	return a[0] == b[0] && a[1] == b[1] && a[2] == b[2] && a[3] == b[3]
}

// extOrderMinusTwo is Modulus^4 - 2, the exponent for inversion in the
// extension's multiplicative group (order Modulus^4 - 1, so a^(order-1) ==
// a^-1). Computed once via math/big since it only runs at package init.
var extOrderMinusTwo = func() *big.Int {
	mod := new(big.Int).SetUint64(Modulus)
	order := new(big.Int).Exp(mod, big.NewInt(4), nil)
	return order.Sub(order, big.NewInt(2))
}()

// Inv returns the multiplicative inverse via Fermat's little theorem over
// the extension's multiplicative group, using square-and-multiply against
// the precomputed exponent. This extension is small and fixed-degree, so
// a GCD-based inverse buys nothing over this simpler approach.
func (a EF) Inv() EF {
	if a.IsZero() {
		panic("field: inverse of zero extension element")
	}
	result := EFOne
	base := a
	bits := extOrderMinusTwo.BitLen()
	for i := 0; i < bits; i++ {
		if extOrderMinusTwo.Bit(i) == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	return result
}
