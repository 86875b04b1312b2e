package field

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	a := FromU64(123456789)
	b := FromU64(987654321)
	if got := a.Add(b).Sub(b); got != a {
		t.Fatalf("add/sub round trip: got %v want %v", got, a)
	}
}

func TestMulInv(t *testing.T) {
	a := FromU64(42)
	inv := a.Inv()
	if got := a.Mul(inv); got != One {
		t.Fatalf("a * a^-1 = %v, want 1", got)
	}
}

func TestNegZero(t *testing.T) {
	if Zero.Neg() != Zero {
		t.Fatalf("-0 should be 0")
	}
}

func TestExtensionMulInv(t *testing.T) {
	a := EF{FromU64(5), FromU64(7), FromU64(11), FromU64(13)}
	inv := a.Inv()
	if got := a.Mul(inv); !got.Equal(EFOne) {
		t.Fatalf("a * a^-1 = %v, want 1", got)
	}
}

func TestExtensionAddSub(t *testing.T) {
	a := EF{1, 2, 3, 4}
	b := EF{4, 3, 2, 1}
	if got := a.Add(b).Sub(b); !got.Equal(a) {
		t.Fatalf("ext add/sub round trip failed: got %v", got)
	}
}

func TestSplit24RoundTrip(t *testing.T) {
	v := uint32(1<<24 - 1)
	lo, hi := Split24(v)
	if got := Join24(lo, hi); uint32(got) != v {
		t.Fatalf("split/join24 round trip: got %v want %v", got, v)
	}
}
