// Package common defines shared constants and sentinel errors used across
// the server, the CLI and the storage layer. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrDuplicateID    = errors.New("duplicate id")

	// Provisioning error kinds. Every failure returned by the account service
	// matches exactly one of them.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPolicyViolation = errors.New("policy violation")
	ErrConflict        = errors.New("conflict")
	ErrStorageFailure  = errors.New("storage failure")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid, malformed or expired operator token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ProvisionError is the structured error surfaced by account provisioning.
// Kind is one of the provisioning sentinels above, Reason is safe to show to
// a caller and Err, when set, is the underlying cause.
type ProvisionError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *ProvisionError) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Reason + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Reason
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *ProvisionError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func InvalidArgument(reason string) error {
	return &ProvisionError{Kind: ErrInvalidArgument, Reason: reason}
}

func PolicyViolation(reason string) error {
	return &ProvisionError{Kind: ErrPolicyViolation, Reason: reason}
}

func Conflict(reason string, cause error) error {
	return &ProvisionError{Kind: ErrConflict, Reason: reason, Err: cause}
}

func StorageFailure(reason string, cause error) error {
	return &ProvisionError{Kind: ErrStorageFailure, Reason: reason, Err: cause}
}

// KindOf returns the provisioning kind carried by err, or nil when err is not
// a provisioning error.
func KindOf(err error) error {
	var pe *ProvisionError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return nil
}

// ReasonOf returns the caller-facing reason of a provisioning error, falling
// back to the error text.
func ReasonOf(err error) string {
	var pe *ProvisionError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return err.Error()
}
