// Package errs defines the conceptual error taxonomy shared by every
// core package: malformed input, invalid length, missing required
// collaborator, structural mismatch, cipher-provider failure, and
// internal/unexpected conditions.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the conceptual buckets a caller
// can branch on without parsing message text.
type Kind int

const (
	// MalformedInput covers hex parse failures and non-digit input where
	// digits are required.
	MalformedInput Kind = iota
	// InvalidLength covers key/PIN/PAN/KSN/BDK/PEK/component/TR-31 field
	// lengths that violate a declared profile.
	InvalidLength
	// MissingRequired covers a required collaborator or field that was
	// not supplied, e.g. ISO-4 without a PEK.
	MissingRequired
	// StructuralMismatch covers TR-31 declared length mismatches,
	// over-declared optional-block counts, and odd-length encrypted keys.
	StructuralMismatch
	// CryptoFailure covers errors propagated from the block-cipher
	// provider: wrong padding on decrypt, unusable key material.
	CryptoFailure
	// NonAscii flags decrypted output containing non-ASCII bytes where
	// textual output was requested.
	NonAscii
	// Internal covers unexpected conditions that should be rare.
	Internal
)

func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed_input"
	case InvalidLength:
		return "invalid_length"
	case MissingRequired:
		return "missing_required"
	case StructuralMismatch:
		return "structural_mismatch"
	case CryptoFailure:
		return "crypto_failure"
	case NonAscii:
		return "non_ascii"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by every core package. It
// carries a Kind so callers can use errors.As and branch on category,
// plus an Op naming the failing operation and an optional wrapped
// cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, errs.Of(...)) style checks against a bare
// Kind wrapped as an Error with no Op/Msg, by comparing Kind only.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// New constructs an *Error for the given kind, operation, and message.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap constructs an *Error for the given kind and operation, wrapping
// an underlying cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Msg: err.Error(), Err: err}
}

// Of returns a zero-value Error carrying only the given Kind, suitable
// as the target of errors.Is to test another error's category:
//
//	if errors.Is(err, errs.Of(errs.InvalidLength)) { ... }
func Of(kind Kind) error {
	return &Error{Kind: kind}
}
