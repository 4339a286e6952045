// Package spatialmath defines the pose and quaternion operations used by the base models.
//
// Quaternions are gonum quat.Number values with Real holding w. Rotations use the Hamilton
// convention, and q and -q are treated as the same orientation everywhere in this package.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Above this |q1·q2| the two quaternions are treated as parallel and slerp falls back to a linear
// blend, avoiding a division by sin(theta) ~ 0.
const slerpParallelThreshold = 1 - 1e-12

// NewZeroQuaternion returns the identity rotation.
func NewZeroQuaternion() quat.Number {
	return quat.Number{Real: 1}
}

// Norm returns the norm of the quaternion, i.e. the sqrt of the squares of the imaginary parts.
func Norm(q quat.Number) float64 {
	return math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// Normalize scales q to unit length. The zero quaternion is returned as the identity.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return NewZeroQuaternion()
	}
	return quat.Scale(1/norm, q)
}

// Dot returns the 4-D inner product of two quaternions.
func Dot(q1, q2 quat.Number) float64 {
	return q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
}

// QuaternionAlmostEqual is an equality test for two quaternions that treats q and -q as equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	if quatCoeffsAlmostEqual(a, b, tol) {
		return true
	}
	return quatCoeffsAlmostEqual(a, Flip(b), tol)
}

func quatCoeffsAlmostEqual(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) <= tol &&
		math.Abs(a.Imag-b.Imag) <= tol &&
		math.Abs(a.Jmag-b.Jmag) <= tol &&
		math.Abs(a.Kmag-b.Kmag) <= tol
}

// Slerp spherically interpolates from q1 (by=0) to q2 (by=1) along the shorter of the two arcs
// joining the rotations. The endpoints are reproduced exactly: by=0 returns q1 and by=1 returns
// q2 or -q2, whichever lies in q1's hemisphere.
func Slerp(q1, q2 quat.Number, by float64) quat.Number {
	d := Dot(q1, q2)
	absD := math.Abs(d)

	var scale0, scale1 float64
	if absD >= slerpParallelThreshold {
		scale0 = 1 - by
		scale1 = by
	} else {
		theta := math.Acos(absD)
		sinTheta := math.Sin(theta)
		scale0 = math.Sin((1-by)*theta) / sinTheta
		scale1 = math.Sin(by*theta) / sinTheta
	}
	if d < 0 {
		scale1 = -scale1
	}

	return quat.Number{
		Real: scale0*q1.Real + scale1*q2.Real,
		Imag: scale0*q1.Imag + scale1*q2.Imag,
		Jmag: scale0*q1.Jmag + scale1*q2.Jmag,
		Kmag: scale0*q1.Kmag + scale1*q2.Kmag,
	}
}

// QuatBetween returns the rotation taking q1 to q2 expressed in q1's frame, conj(q1)*q2.
func QuatBetween(q1, q2 quat.Number) quat.Number {
	return quat.Mul(quat.Conj(q1), q2)
}

// QuatToR4AA converts a quat to an R4 axis angle in the same way the C++ Eigen library does.
// https://eigen.tuxfamily.org/dox/AngleAxis_8h_source.html
func QuatToR4AA(q quat.Number) R4AA {
	denom := Norm(q)

	angle := 2 * math.Atan2(denom, math.Abs(q.Real))
	if q.Real < 0 {
		angle *= -1
	}

	if denom < 1e-6 {
		return R4AA{Theta: angle, RX: 0, RY: 0, RZ: 1}
	}
	return R4AA{Theta: angle, RX: q.Imag / denom, RY: q.Jmag / denom, RZ: q.Kmag / denom}
}

// RotatePoint rotates p by the unit quaternion q, q*p*conj(q).
func RotatePoint(q quat.Number, x, y, z float64) (float64, float64, float64) {
	rotated := quat.Mul(quat.Mul(q, quat.Number{Imag: x, Jmag: y, Kmag: z}), quat.Conj(q))
	return rotated.Imag, rotated.Jmag, rotated.Kmag
}

// Yaw returns the heading of q about the world z axis, in radians in (-pi, pi].
func Yaw(q quat.Number) float64 {
	return math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag))
}
