package catalog

import (
	"errors"
	"fmt"
)

// NotFoundError reports a slug that does not resolve to a stored record.
type NotFoundError struct {
	Resource string
	Slug     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Slug)
}

// StoreError wraps any failure reaching or decoding the backing store. Callers
// get a single classification; the cause is kept for logs.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports filter input the translator refuses to build a query from.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// WrapStore classifies err as a StoreError unless it is nil or already one.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
