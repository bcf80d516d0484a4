package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepplan-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps an error onto the wire envelope. Typed apierr.Error
// values carry their own status and code; anything else is a 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := apierr.CodeInternal
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	var ae *apierr.Error
	if errors.As(err, &ae) {
		if ae.Status != 0 {
			status = ae.Status
		}
		code = ae.Code
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
