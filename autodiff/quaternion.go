package autodiff

// Vec3 is a 3-vector over a Field.
type Vec3[T any] struct {
	X, Y, Z T
}

// Quat is a quaternion over a Field. Coefficients are stored in the (x, y, z, w) order used by the
// flat state layout; multiplication follows the Hamilton convention.
type Quat[T any] struct {
	X, Y, Z, W T
}

// Coeffs returns the coefficients in (x, y, z, w) order.
func (q Quat[T]) Coeffs() []T {
	return []T{q.X, q.Y, q.Z, q.W}
}

// Vec returns the imaginary part.
func (q Quat[T]) Vec() Vec3[T] {
	return Vec3[T]{q.X, q.Y, q.Z}
}

// Slice returns the components in (x, y, z) order.
func (v Vec3[T]) Slice() []T {
	return []T{v.X, v.Y, v.Z}
}

// QuatMul returns the Hamilton product a*b.
func QuatMul[T any](f Field[T], a, b Quat[T]) Quat[T] {
	return Quat[T]{
		X: sum4(f, f.Mul(a.W, b.X), f.Mul(a.X, b.W), f.Mul(a.Y, b.Z), f.Neg(f.Mul(a.Z, b.Y))),
		Y: sum4(f, f.Mul(a.W, b.Y), f.Neg(f.Mul(a.X, b.Z)), f.Mul(a.Y, b.W), f.Mul(a.Z, b.X)),
		Z: sum4(f, f.Mul(a.W, b.Z), f.Mul(a.X, b.Y), f.Neg(f.Mul(a.Y, b.X)), f.Mul(a.Z, b.W)),
		W: sum4(f, f.Mul(a.W, b.W), f.Neg(f.Mul(a.X, b.X)), f.Neg(f.Mul(a.Y, b.Y)), f.Neg(f.Mul(a.Z, b.Z))),
	}
}

// QuatConj returns the conjugate, which is the inverse for unit quaternions.
func QuatConj[T any](f Field[T], q Quat[T]) Quat[T] {
	return Quat[T]{X: f.Neg(q.X), Y: f.Neg(q.Y), Z: f.Neg(q.Z), W: q.W}
}

// QuatRotate rotates v by the unit quaternion q, q*v*conj(q), using
// v' = v + 2w(u x v) + 2u x (u x v) with u the vector part of q.
// The result is not meaningful for non-unit q; no normalisation is applied.
func QuatRotate[T any](f Field[T], q Quat[T], v Vec3[T]) Vec3[T] {
	u := q.Vec()
	uv := Cross(f, u, v)
	uv = Vec3[T]{f.Scale(2, uv.X), f.Scale(2, uv.Y), f.Scale(2, uv.Z)}
	uuv := Cross(f, u, uv)
	return Vec3[T]{
		X: f.Add(f.Add(v.X, f.Mul(q.W, uv.X)), uuv.X),
		Y: f.Add(f.Add(v.Y, f.Mul(q.W, uv.Y)), uuv.Y),
		Z: f.Add(f.Add(v.Z, f.Mul(q.W, uv.Z)), uuv.Z),
	}
}

// Cross returns a x b.
func Cross[T any](f Field[T], a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{
		X: f.Sub(f.Mul(a.Y, b.Z), f.Mul(a.Z, b.Y)),
		Y: f.Sub(f.Mul(a.Z, b.X), f.Mul(a.X, b.Z)),
		Z: f.Sub(f.Mul(a.X, b.Y), f.Mul(a.Y, b.X)),
	}
}

// SubVec returns a - b.
func SubVec[T any](f Field[T], a, b Vec3[T]) Vec3[T] {
	return Vec3[T]{f.Sub(a.X, b.X), f.Sub(a.Y, b.Y), f.Sub(a.Z, b.Z)}
}

func sum4[T any](f Field[T], a, b, c, d T) T {
	return f.Add(f.Add(a, b), f.Add(c, d))
}
