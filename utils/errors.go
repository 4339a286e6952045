package utils

import (
	"github.com/pkg/errors"
)

// NewConfigValidationError returns a config validation error
// occurring at a given path.
func NewConfigValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// NewConfigValidationFieldRequiredError returns a config validation
// error for a field missing at a given path.
func NewConfigValidationFieldRequiredError(path, field string) error {
	return NewConfigValidationError(path, errors.Errorf("%q is required", field))
}

// NewDimensionMismatchError is used when a vector or matrix handed across a package boundary
// does not have the expected length or shape.
func NewDimensionMismatchError(what string, expected, actual int) error {
	return errors.Errorf("%s has dimension %d, expected %d", what, actual, expected)
}
