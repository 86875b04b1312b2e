// Package common holds the shared trace-matrix type and padding helpers
// every chip's trace builder uses, plus the Chip interface the machine
// orchestrates over.
package common

import "github.com/oisee/bf-zkvm/pkg/field"

// Matrix is a row-major trace: Width columns, Height rows (a power of
// two, at least 16, per the padding rule). Each chip's Row struct is
// flattened into one Matrix row in a fixed column order.
type Matrix struct {
	Width  int
	Height int
	Values []field.F
}

func NewMatrix(width, height int) Matrix {
	return Matrix{Width: width, Height: height, Values: make([]field.F, width*height)}
}

func (m Matrix) Row(i int) []field.F {
	return m.Values[i*m.Width : (i+1)*m.Width]
}

// NextPow2 rounds n up to the next power of two, floored at 16 (the
// padding rule every chip's trace obeys).
func NextPow2(n int) int {
	if n < 16 {
		n = 16
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
