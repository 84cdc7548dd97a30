package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// ErrorBody is the shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// RespondWithError writes err as {"error": message}. Errors that are not an
// *AppError are masked as a 500, or a 504 when the request deadline passed.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := apperrors.As(err); ok && appErr.Code != apperrors.ErrInternal {
		status = appErr.StatusCode()
		message = appErr.Message
	} else if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
		message = "request timeout"
	}

	c.AbortWithStatusJSON(status, ErrorBody{Error: message})
}

// BindJSON decodes the request body into dst and runs its binding tags. An
// empty body decodes as {}.
func BindJSON(c *gin.Context, dst any) error {
	if err := DecodeJSON(c, dst); err != nil {
		return err
	}
	return validator.Struct(dst)
}

// DecodeJSON decodes the request body into dst without running binding tags,
// for handlers that must look something up before judging field values.
func DecodeJSON(c *gin.Context, dst any) error {
	if c.Request.Body == nil {
		return nil
	}

	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.NewBadRequest(typeErr.Field+" has the wrong type", err)
	}
	return apperrors.NewBadRequest("invalid request body", err)
}

// ParseID reads a numeric path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequest("invalid "+name, err)
	}
	return id, nil
}
