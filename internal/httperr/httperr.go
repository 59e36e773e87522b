package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context) {
	Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
}

// ======================================================
// DOMAIN ERRORS
// ======================================================

var statusByKind = map[domain.Kind]int{
	domain.KindNotFound:                http.StatusNotFound,
	domain.KindInvalidDate:             http.StatusBadRequest,
	domain.KindProfessionalNotLinked:   http.StatusBadRequest,
	domain.KindInvalidStatusTransition: http.StatusBadRequest,
	domain.KindInvalidInput:            http.StatusBadRequest,
	domain.KindTimeConflict:            http.StatusConflict,
	domain.KindHasDependents:           http.StatusConflict,
	domain.KindDuplicateIdentity:       http.StatusConflict,
	domain.KindForbidden:               http.StatusForbidden,
	domain.KindInvalidCredentials:      http.StatusUnauthorized,
}

// Status returns the HTTP status for err's domain kind, 500 otherwise.
func Status(err error) int {
	if status, ok := statusByKind[domain.KindOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// FromError is the single place where handlers turn an error into a
// response. Unclassified errors are attached to the gin context so the
// request logger records them; the client only sees a generic message.
func FromError(c *gin.Context, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		_ = c.Error(err)
		Internal(c, "internal_error", "Erro interno do servidor.")
		return
	}

	code := string(de.Kind)
	if de.Kind == domain.KindNotFound && de.Resource != "" {
		code = de.Resource + "_not_found"
	}

	message := de.Message
	if message == "" {
		message = http.StatusText(Status(err))
	}

	Write(c, Status(err), code, message)
}
