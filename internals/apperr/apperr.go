// file: internals/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

/* ============================================
   Error taxonomy

   Every business rule failure in the school
   core surfaces as exactly one of these kinds;
   controllers map them to HTTP via Status().
============================================ */

type Kind int

const (
	KindValidation Kind = iota + 1 // malformed/missing input
	KindConflict                   // uniqueness/overlap violated
	KindPrecondition               // required condition not currently true
	KindState                      // transition not allowed from current state
	KindNotFound                   // referenced record does not exist
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field detail for validation errors (optional).
	Fields map[string][]string
	// Err is the underlying cause, if any (e.g. a unique-violation from the DB).
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

/* ============================================
   Constructors
============================================ */

func NewValidation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewValidationFields(message string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// WrapConflict keeps the storage-level cause (unique index violation) while
// presenting the same conflict the application-level check would.
func WrapConflict(message string, err error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: err}
}

func NewPrecondition(message string) *Error {
	return &Error{Kind: KindPrecondition, Message: message}
}

func NewState(message string) *Error {
	return &Error{Kind: KindState, Message: message}
}

func NewNotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

/* ============================================
   Predicates
============================================ */

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool   { return kindOf(err) == KindValidation }
func IsConflict(err error) bool     { return kindOf(err) == KindConflict }
func IsPrecondition(err error) bool { return kindOf(err) == KindPrecondition }
func IsState(err error) bool        { return kindOf(err) == KindState }
func IsNotFound(err error) bool     { return kindOf(err) == KindNotFound }

/* ============================================
   HTTP mapping
============================================ */

func Status(err error) int {
	switch kindOf(err) {
	case KindValidation:
		return fiber.StatusUnprocessableEntity
	case KindConflict:
		return fiber.StatusConflict
	case KindPrecondition:
		return fiber.StatusPreconditionFailed
	case KindState:
		return fiber.StatusConflict
	case KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
