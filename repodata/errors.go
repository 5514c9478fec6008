package repodata

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrSchemaViolation      = errors.New("schema violation")
	ErrNamespaceMismatch    = errors.New("namespace mismatch")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrUnsupportedAlgorithm = errors.New("unsupported checksum algorithm")
	ErrChecksumMismatch     = errors.New("checksum mismatch")
	ErrSizeMismatch         = errors.New("size mismatch")
)

// SchemaError reports a required field that is absent or malformed.
// Field uses element names, with "@" for attributes ("checksum@type").
type SchemaError struct {
	Field  string
	Kind   string
	Reason string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("%v: %s", ErrSchemaViolation, e.Field)
	if e.Kind != "" {
		msg += fmt.Sprintf(" (data type %q)", e.Kind)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *SchemaError) Unwrap() error { return ErrSchemaViolation }

// NamespaceError reports a root element outside the repo namespace.
type NamespaceError struct {
	Got string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("%v: root namespace %q, want %q", ErrNamespaceMismatch, e.Got, Namespace)
}

func (e *NamespaceError) Unwrap() error { return ErrNamespaceMismatch }

// TypeError reports element text that is not a decimal unsigned integer.
type TypeError struct {
	Field string
	Kind  string
	Value string
	Err   error
}

func (e *TypeError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%v: %s: %q is not an unsigned integer", ErrTypeMismatch, e.Field, e.Value)
	}
	return fmt.Sprintf("%v: %s of data type %q: %q is not an unsigned integer", ErrTypeMismatch, e.Field, e.Kind, e.Value)
}

func (e *TypeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTypeMismatch}
	}
	return []error{ErrTypeMismatch, e.Err}
}

type UnsupportedAlgorithmError struct {
	Algorithm string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedAlgorithm, e.Algorithm)
}

func (e *UnsupportedAlgorithmError) Unwrap() error { return ErrUnsupportedAlgorithm }

// ChecksumMismatchError carries both digests. Field is "checksum" or
// "open-checksum".
type ChecksumMismatchError struct {
	Field     string
	Algorithm string
	Expected  string
	Actual    string
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%v: %s %s: expected %s, got %s", ErrChecksumMismatch, e.Field, e.Algorithm, e.Expected, e.Actual)
}

func (e *ChecksumMismatchError) Unwrap() error { return ErrChecksumMismatch }

// SizeMismatchError: Field is "size" or "open-size".
type SizeMismatchError struct {
	Field    string
	Expected uint64
	Actual   uint64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s: expected %d bytes, got %d", ErrSizeMismatch, e.Field, e.Expected, e.Actual)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }
