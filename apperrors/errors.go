package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Kind classifies an application error. The cart/checkout core reports every
// failure through one of these kinds so that callers can branch on behavior
// instead of on message strings.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation: malformed input, e.g. neither packageId nor tripId supplied.
	KindValidation
	// KindNotFound: entity absent or owned by a different user. Ownership
	// failures surface as not-found, not forbidden, to avoid leaking existence.
	KindNotFound
	// KindEmptyCart: checkout attempted with no cart items.
	KindEmptyCart
	// KindReference: a cart item's catalog reference is no longer resolvable.
	// Data-integrity fault; must never be silently priced as zero.
	KindReference
	// KindTransaction: the atomic checkout unit of work failed at the storage
	// layer. No partial state remains.
	KindTransaction
)

// Error is the application error type carried across service boundaries.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func NotFound(message string) *Error {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func EmptyCart() *Error {
	return New(KindEmptyCart, http.StatusBadRequest, "cart is empty", nil)
}

func Reference(message string) *Error {
	return New(KindReference, http.StatusConflict, message, nil)
}

func Transaction(err error) *Error {
	return New(KindTransaction, http.StatusInternalServerError, "checkout could not be completed", err)
}

func Internal(err error) *Error {
	return New(KindInternal, http.StatusInternalServerError, "internal server error", err)
}

// KindOf returns the kind of err, or KindInternal for non-application errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsEmptyCart(err error) bool { return KindOf(err) == KindEmptyCart }
func IsReference(err error) bool { return KindOf(err) == KindReference }

// Respond writes err to the gin context as a JSON error payload. Unknown
// errors are masked behind a generic 500 so storage details never leak.
func Respond(c *gin.Context, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Internal(err)
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
