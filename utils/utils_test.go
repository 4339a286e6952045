package utils

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(33.3)), test.ShouldAlmostEqual, 33.3)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(-1, 0, 1), test.ShouldEqual, 0.)
	test.That(t, Clamp(2, 0, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(0.25, 0, 1), test.ShouldEqual, 0.25)
	test.That(t, math.IsNaN(Clamp(math.NaN(), 0, 1)), test.ShouldBeTrue)
}

func TestFloat64AlmostEqual(t *testing.T) {
	test.That(t, Float64AlmostEqual(1, 1+1e-9, 1e-8), test.ShouldBeTrue)
	test.That(t, Float64AlmostEqual(1, 1.1, 1e-8), test.ShouldBeFalse)
}

func TestConfigValidationErrors(t *testing.T) {
	err := NewConfigValidationFieldRequiredError("cost", "q_position")
	test.That(t, err.Error(), test.ShouldEqual, `error validating "cost": "q_position" is required`)

	inner := errors.New("bad")
	err = NewConfigValidationError("cost.r", inner)
	test.That(t, errors.Cause(err), test.ShouldEqual, inner)

	err = NewDimensionMismatchError("state", 7, 6)
	test.That(t, err.Error(), test.ShouldEqual, "state has dimension 6, expected 7")
}
