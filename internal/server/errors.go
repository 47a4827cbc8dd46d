package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safebite/chaintrace/internal/chain/domain"
)

const (
	codeValidation  = "VALIDATION_ERROR"
	codeNotFound    = "NOT_FOUND"
	codeNoSigner    = "NO_SIGNER"
	codeReverted    = "TX_REVERTED"
	codeUnavailable = "CHAIN_UNAVAILABLE"
	codeUnknown     = "UNKNOWN_ERROR"
)

// errorResponse is the single failure envelope every handler produces.
type errorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Context string `json:"context"`
	Code    string `json:"code"`
}

// requestError is a rejection raised by a handler before any ledger call.
type requestError struct {
	status int
	code   string
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func validationError(format string, args ...interface{}) error {
	return &requestError{
		status: http.StatusBadRequest,
		code:   codeValidation,
		msg:    fmt.Sprintf(format, args...),
	}
}

// AbortWithError records the failure on the context for the error middleware
// to render. The operation name becomes the envelope's context field.
func AbortWithError(c *gin.Context, operation string, err error) {
	_ = c.Error(err).SetMeta(operation)
	c.Abort()
}

// ErrorHandlingMiddleware renders the last recorded error as the standard
// envelope. Handlers never write failure bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		operation, _ := last.Meta.(string)
		status, code, message := mapError(last.Err)
		c.JSON(status, errorResponse{
			Error:   true,
			Message: message,
			Context: operation,
			Code:    code,
		})
	}
}

func mapError(err error) (int, string, string) {
	var reqErr *requestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.code, reqErr.msg
	case errors.Is(err, domain.ErrConsumerGrant):
		return http.StatusBadRequest, codeValidation, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, codeNotFound, err.Error()
	case errors.Is(err, domain.ErrNoSigner):
		return http.StatusForbidden, codeNoSigner, err.Error()
	case errors.Is(err, domain.ErrReverted):
		return http.StatusBadRequest, codeReverted, err.Error()
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusInternalServerError, codeUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, codeUnknown, err.Error()
	}
}
