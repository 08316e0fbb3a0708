package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yoockh/jobboard/internal/api/middleware"
	"github.com/yoockh/jobboard/internal/models"
	"github.com/yoockh/jobboard/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError renders err. Server-side failures are attached to the gin context
// for the request logger and reach the client only as their safe message.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requirePrincipal(c *gin.Context) (models.Principal, bool) {
	if p, ok := middleware.Principal(c); ok {
		return p, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return models.Principal{}, false
}

// bindStrict decodes a JSON body, rejecting fields the target does not declare,
// then runs the binding tag validation.
func bindStrict(c *gin.Context, op string, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid request body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeError(c, utils.E(utils.CodeInvalidArgument, op, msg, err))
		return false
	}
	if binding.Validator != nil {
		if err := binding.Validator.ValidateStruct(dst); err != nil {
			writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing or invalid fields", err))
			return false
		}
	}
	return true
}
