package autodiff

import (
	"gonum.org/v1/gonum/mat"
)

// MatVec returns m*v where m holds constants and v holds field values.
func MatVec[T any](f Field[T], m mat.Matrix, v []T) []T {
	rows, _ := m.Dims()
	return MatVecTo(f, make([]T, rows), m, v)
}

// MatVecTo writes m*v into dst and returns it. dst must have one entry per row of m and v one per
// column; the shapes are checked by callers when the matrix is configured, not here.
func MatVecTo[T any](f Field[T], dst []T, m mat.Matrix, v []T) []T {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		acc := f.Const(0)
		for j := 0; j < cols; j++ {
			acc = f.Add(acc, f.Scale(m.At(i, j), v[j]))
		}
		dst[i] = acc
	}
	return dst
}
