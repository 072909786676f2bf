package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/javanauta/user-directory/pkg/errors"
)

// Response is the envelope every endpoint returns.
// Code is the business code (0 on success), not the HTTP status; the HTTP
// status carries the transport semantics (201, 404, 409, ...) separately.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 with the given payload, used by the create endpoint.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// NoContent writes a bare 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error response, mapping the business code to the matching
// HTTP status so clients get deterministic transport semantics.
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	if appErr.Err != nil {
		// Keep the internal cause out of the response body; gin's error
		// list gets it into the request log.
		_ = c.Error(appErr.Err)
	}

	c.JSON(httpStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// ErrorWithCode writes an error response with an explicit code and message.
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(httpStatus(code), Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// httpStatus maps a business code to its HTTP status.
func httpStatus(code int) int {
	switch {
	case code == apperrors.ErrCodeEmailDuplicate:
		return http.StatusConflict
	case code == apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case code >= 40100 && code < 40200:
		return http.StatusUnauthorized
	case code >= 40400 && code < 40500:
		return http.StatusNotFound
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
