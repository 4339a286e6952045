package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// AngularVelocity contains angular velocity in rad/s across x/y/z axes.
type AngularVelocity r3.Vector

// QuatRateToBodyAngVel recovers the body-frame angular velocity from an orientation q and its
// coefficient derivative qdot, using qdot = 1/2 q*(0, w_body).
func QuatRateToBodyAngVel(q, qdot quat.Number) AngularVelocity {
	w := quat.Scale(2, quat.Mul(quat.Conj(q), qdot))
	return AngularVelocity{X: w.Imag, Y: w.Jmag, Z: w.Kmag}
}

// QuatRateToWorldAngVel is QuatRateToBodyAngVel expressed in the world frame, using
// qdot = 1/2 (0, w_world)*q.
func QuatRateToWorldAngVel(q, qdot quat.Number) AngularVelocity {
	w := quat.Scale(2, quat.Mul(qdot, quat.Conj(q)))
	return AngularVelocity{X: w.Imag, Y: w.Jmag, Z: w.Kmag}
}
