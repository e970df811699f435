// Package errors defines the error taxonomy shared by the order book core and
// its ambient layers: validation faults, soft rejections and fatal invariant
// breaches each get their own type so callers can branch on class rather than
// on string matching.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Code identifies a specific soft-rejection or validation reason.
type Code string

const (
	// CodeDuplicateOrder marks an AddOrder call for an id already resting in the book.
	CodeDuplicateOrder Code = "duplicate_order"
	// CodeEmptyOppositeBook marks a Market order submitted against an empty opposite side.
	CodeEmptyOppositeBook Code = "empty_opposite_book"
	// CodeUnmatchable marks an ImmediateOrCancel order that cannot match immediately.
	CodeUnmatchable Code = "unmatchable"
	// CodeInfeasibleFill marks an AllOrNone order that cannot be fully filled.
	CodeInfeasibleFill Code = "infeasible_fill"
	// CodeInvalidLifecycle marks a boundary request naming an unrecognised lifecycle.
	CodeInvalidLifecycle Code = "invalid_lifecycle"
	// CodeInvalidSide marks a boundary request naming an unrecognised side.
	CodeInvalidSide Code = "invalid_side"
	// CodeInvalidQuantity marks a boundary request with a zero quantity, or a
	// Fill call for more than an order's remaining quantity.
	CodeInvalidQuantity Code = "invalid_quantity"
)

// Rejection is a soft rejection: the caller did nothing wrong structurally,
// but the book's lifecycle rules reject the order with no side effects.
type Rejection struct {
	Code    Code
	Message string
}

// NewRejection builds a Rejection with the given code and message.
func NewRejection(code Code, message string) *Rejection {
	return &Rejection{Code: code, Message: message}
}

func (r *Rejection) Error() string {
	return r.Message
}

// Validation is a caller-bug class error: boundary input or a programming
// misuse of the core API that never arises from the Matcher's own call
// sites.
type Validation struct {
	Code    Code
	Field   string
	Message string
}

// NewValidation builds a Validation error for the named field.
func NewValidation(code Code, field, message string) *Validation {
	return &Validation{Code: code, Field: field, Message: message}
}

func (v *Validation) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// InvariantBreach represents a violation of one of the book's core
// invariants (I1-I6). It is never meant to be recovered from: constructing
// one is the last thing the core does before the facade panics.
type InvariantBreach struct {
	Invariant string
	Detail    string
}

// NewInvariantBreach builds an InvariantBreach describing which invariant
// failed and how.
func NewInvariantBreach(invariant, detail string) *InvariantBreach {
	return &InvariantBreach{Invariant: invariant, Detail: detail}
}

func (b *InvariantBreach) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", b.Invariant, b.Detail)
}

// Wrap annotates err with message and a stack trace, following the same
// pkg/errors convention the rest of this codebase uses for error provenance.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, message)
}

// StackTracer is implemented by errors carrying a pkg/errors stack trace.
type StackTracer interface {
	StackTrace() pkgerrors.StackTrace
}
