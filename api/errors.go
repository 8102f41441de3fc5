package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osuc/buscaramos/db"
	"github.com/osuc/buscaramos/logger"
	"github.com/osuc/buscaramos/service"
)

var ErrBadRequest = errors.New("bad request")

type ErrorCode string

const (
	ErrorCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrorCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrorCodeInternal   ErrorCode = "INTERNAL"
)

type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func abort(c *gin.Context, status int, code ErrorCode, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// HandleAPIError maps err to a status code and writes the error response.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		abort(c, http.StatusNotFound, ErrorCodeNotFound, "Resource not found")
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrUnknownKind):
		abort(c, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
	default:
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		abort(c, http.StatusInternalServerError, ErrorCodeInternal, "Internal server error")
	}
}
