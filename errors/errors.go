package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two application errors by code and message so wrapped
// copies still compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Wrap returns a copy of base carrying err as its cause. The sentinel
// itself is never mutated.
func Wrap(base *Error, err error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Forbidden", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Checkout error types
var (
	ErrInvalidInput         = New(http.StatusBadRequest, "Invalid input", nil)
	ErrEmptyCart            = New(http.StatusBadRequest, "Cart is empty", nil)
	ErrPrescriptionRequired = New(http.StatusBadRequest, "Prescription required", nil)
	ErrUploadFailed         = New(http.StatusBadGateway, "Prescription upload failed", nil)
	ErrCheckoutInProgress   = New(http.StatusConflict, "A checkout is already in progress", nil)
)

// Payment error types. A timeout is not a failure: the payment may still
// land out-of-band, so callers must never treat the two the same way.
var (
	ErrPaymentFailed  = New(http.StatusPaymentRequired, "Payment failed", nil)
	ErrPaymentTimeout = New(http.StatusGatewayTimeout, "Payment confirmation timed out", nil)
)

// Order lifecycle error types
var (
	ErrInvalidTransition = New(http.StatusConflict, "Invalid order status transition", nil)
)

// Abort writes the error as a JSON response. An application error
// anywhere in the chain keeps its status code; anything else is reported
// as an internal server error without leaking its message.
func Abort(c *gin.Context, err error) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		c.AbortWithStatusJSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": ErrInternalServer.Message})
}
