// Package common holds small helpers shared across packages.
package common

import (
	"errors"
)

// Combine joins the non-nil errors into one, or returns nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}
