package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by errors.Is against the typed validation errors.
var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrMissingField      = errors.New("missing field")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrCoercion          = errors.New("coercion failed")
)

// UnknownCollectionError is returned when no schema is registered under the
// requested collection name.
type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("unknown collection %q", e.Collection)
}

// Is reports whether target is ErrUnknownCollection.
func (e *UnknownCollectionError) Is(target error) bool {
	return target == ErrUnknownCollection
}

// MissingFieldError is returned when a required field is absent.
type MissingFieldError struct {
	Collection string
	Field      string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required field %q is missing", e.Collection, e.Field)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeMismatchError is returned when a present field holds a value of the
// wrong type. Field may carry an index suffix for list elements ("tags[2]").
type TypeMismatchError struct {
	Collection string
	Field      string
	Expected   string
	Actual     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: field %q: expected %s, got %s", e.Collection, e.Field, e.Expected, e.Actual)
}

// Is reports whether target is ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// CoercionError is returned when a value of an accepted type cannot be
// converted to the field's canonical type.
type CoercionError struct {
	Collection string
	Field      string
	Reason     string
	Err        error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", e.Collection, e.Field, e.Reason)
}

// Is reports whether target is ErrCoercion.
func (e *CoercionError) Is(target error) bool {
	return target == ErrCoercion
}

// Unwrap returns the underlying parse or resolver error, if any.
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// IsUnknownCollection checks if an error is an UnknownCollectionError
func IsUnknownCollection(err error) bool {
	var target *UnknownCollectionError
	return errors.As(err, &target)
}

// IsMissingField checks if an error is a MissingFieldError
func IsMissingField(err error) bool {
	var target *MissingFieldError
	return errors.As(err, &target)
}

// IsTypeMismatch checks if an error is a TypeMismatchError
func IsTypeMismatch(err error) bool {
	var target *TypeMismatchError
	return errors.As(err, &target)
}

// IsCoercion checks if an error is a CoercionError
func IsCoercion(err error) bool {
	var target *CoercionError
	return errors.As(err, &target)
}

// FieldOf returns the field name carried by a validation error, or "" if err
// is not one of the field-level validation errors.
func FieldOf(err error) string {
	var (
		missing  *MissingFieldError
		mismatch *TypeMismatchError
		coercion *CoercionError
	)
	switch {
	case errors.As(err, &missing):
		return missing.Field
	case errors.As(err, &mismatch):
		return mismatch.Field
	case errors.As(err, &coercion):
		return coercion.Field
	}
	return ""
}
