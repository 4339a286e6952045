// Package autodiff lets model code be written once against a scalar Field and evaluated either
// with plain float64 values or with forward-mode dual numbers that carry a derivative alongside
// each value.
//
// Model functions written against Field must not branch on values or on the concrete scalar type;
// the derivative is only meaningful when the same arithmetic runs for both fields.
package autodiff

import (
	"gonum.org/v1/gonum/num/dual"
)

// Field is the arithmetic a scalar type must support for the base models.
type Field[T any] interface {
	// Const lifts a constant (zero derivative) into the field.
	Const(v float64) T
	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T
	// Scale multiplies a by a constant.
	Scale(f float64, a T) T
	// Value drops any derivative information.
	Value(a T) float64
}

// Real is the Field over plain float64.
type Real struct{}

// Const implements Field.
func (Real) Const(v float64) float64 { return v }

// Add implements Field.
func (Real) Add(a, b float64) float64 { return a + b }

// Sub implements Field.
func (Real) Sub(a, b float64) float64 { return a - b }

// Mul implements Field.
func (Real) Mul(a, b float64) float64 { return a * b }

// Neg implements Field.
func (Real) Neg(a float64) float64 { return -a }

// Scale implements Field.
func (Real) Scale(f, a float64) float64 { return f * a }

// Value implements Field.
func (Real) Value(a float64) float64 { return a }

// Dual is the Field over gonum dual numbers. Real holds the value and Emag the directional
// derivative along whichever input was seeded.
type Dual struct{}

// Const implements Field.
func (Dual) Const(v float64) dual.Number { return dual.Number{Real: v} }

// Add implements Field.
func (Dual) Add(a, b dual.Number) dual.Number { return dual.Add(a, b) }

// Sub implements Field.
func (Dual) Sub(a, b dual.Number) dual.Number { return dual.Sub(a, b) }

// Mul implements Field.
func (Dual) Mul(a, b dual.Number) dual.Number { return dual.Mul(a, b) }

// Neg implements Field.
func (Dual) Neg(a dual.Number) dual.Number { return dual.Scale(-1, a) }

// Scale implements Field.
func (Dual) Scale(f float64, a dual.Number) dual.Number { return dual.Scale(f, a) }

// Value implements Field.
func (Dual) Value(a dual.Number) float64 { return a.Real }

// Lift converts plain values into the field.
func Lift[T any](f Field[T], values []float64) []T {
	out := make([]T, len(values))
	for i, v := range values {
		out[i] = f.Const(v)
	}
	return out
}

// Values drops derivative information from a slice of field values.
func Values[T any](f Field[T], values []T) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = f.Value(v)
	}
	return out
}
