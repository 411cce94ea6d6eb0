// Package errs maps the solver's error-kind taxonomy onto errbuilder-go,
// so every error the CLI surfaces carries a typed code rather than only a
// Go error string.
//
// Kinds (matching the transaction solver's error-handling design):
//
//	NotFound              - requested package has no candidate in pool or DB
//	NoVersion              - positive constraint allows zero candidates
//	Hold                    - held version excluded by constraint
//	UnsatisfiableConflict   - conflict resolution yields the failure incompatibility
//	MissingDependency       - repo-pool traversal hit an unresolvable dependency
//	InsufficientSpace       - a mountpoint's net delta exceeds its free space
//	AlternativeLinkBroken   - an alternatives-group symlink is absent or wrong
//	Internal                - invariant violated; indicates a bug
package errs

import (
	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
)

// NotFound builds a NotFound-coded error.
func NotFound(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg).
		WithCause(cause)
}

// NoVersion builds a FailedPrecondition-coded error for an unsatisfiable
// positive constraint (zero candidate versions remain).
func NoVersion(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg).
		WithCause(cause)
}

// Hold builds a FailedPrecondition-coded error for a held version excluded
// by a constraint.
func Hold(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg).
		WithCause(cause)
}

// UnsatisfiableConflict builds a FailedPrecondition-coded error carrying the
// solver's explanation of a failed solve.
func UnsatisfiableConflict(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg).
		WithCause(cause)
}

// MissingDependency builds a NotFound-coded error for a dependency that is
// absent while traversing the repository pool (fatal there; traversal of
// the installed DB instead silently skips these per spec).
func MissingDependency(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg).
		WithCause(cause)
}

// InsufficientSpace builds a FailedPrecondition-coded error reporting a
// mountpoint whose computed deficit exceeds its free space.
func InsufficientSpace(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msg).
		WithCause(cause)
}

// AlternativeLinkBroken builds a NotFound-coded error for a missing or
// mistargeted alternatives-group symlink.
func AlternativeLinkBroken(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg).
		WithCause(cause)
}

// Internal builds an Internal-coded error for a violated invariant.
func Internal(msg string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(cause)
}

// CodeOf extracts the errbuilder code from err, for dispatching CLI exit
// codes the way errbuilder.CodeOf is used across the example pack.
func CodeOf(err error) errbuilder.Code {
	return errbuilder.CodeOf(err)
}
