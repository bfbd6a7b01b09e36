// Package mixerr defines the two error shapes used across the core, per
// spec §7: invalid input (a precondition failure, raised eagerly) and a
// verification result (a well-formed argument that simply does not verify).
package mixerr

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every precondition failure raised by a smart
// constructor or a proving/verifying entry point.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInput formats a new error wrapping ErrInvalidInput.
func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// VerificationResult is the boolean-like outcome of a verification call. It
// is never returned as a Go error: a malformed argument is an InvalidInput
// error, but a well-formed argument that fails to verify is a
// VerificationResult with IsVerified false and at least one reason.
type VerificationResult struct {
	IsVerified bool
	Reasons    []string
}

// Verified reports a successful verification.
func Verified() VerificationResult {
	return VerificationResult{IsVerified: true}
}

// Failed reports a failed verification with a single reason.
func Failed(reason string) VerificationResult {
	return VerificationResult{IsVerified: false, Reasons: []string{reason}}
}

// Failedf is Failed with fmt.Sprintf-style formatting.
func Failedf(format string, args ...any) VerificationResult {
	return Failed(fmt.Sprintf(format, args...))
}

// And conjoins a list of VerificationResults: the combined result is
// verified only if every one of them is, and it carries the union of all
// failure reasons in order (the verifier never short-circuits, per spec §7).
func And(results ...VerificationResult) VerificationResult {
	out := VerificationResult{IsVerified: true}
	for _, r := range results {
		if !r.IsVerified {
			out.IsVerified = false
		}
		out.Reasons = append(out.Reasons, r.Reasons...)
	}
	return out
}

// Check turns a single boolean condition into a VerificationResult with the
// given failure reason when the condition is false.
func Check(ok bool, reason string) VerificationResult {
	if ok {
		return Verified()
	}
	return Failed(reason)
}
