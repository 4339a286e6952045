package autodiff

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/dual"
)

// Jacobian evaluates fn at x once per input dimension, seeding that input's derivative with 1, and
// collects the derivatives into a len(fn(x)) by len(x) matrix. The value of fn at x is returned
// alongside.
func Jacobian(x []float64, fn func([]dual.Number) []dual.Number) ([]float64, *mat.Dense) {
	seeded := Lift[dual.Number](Dual{}, x)

	var (
		value []float64
		jac   *mat.Dense
	)
	for j := range x {
		seeded[j].Emag = 1
		out := fn(seeded)
		seeded[j].Emag = 0

		if jac == nil {
			value = Values[dual.Number](Dual{}, out)
			jac = mat.NewDense(len(out), len(x), nil)
		}
		for i, o := range out {
			jac.Set(i, j, o.Emag)
		}
	}
	if jac == nil {
		// No inputs, so no derivative columns; still report the value.
		value = Values[dual.Number](Dual{}, fn(seeded))
	}
	return value, jac
}
