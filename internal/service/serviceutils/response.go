package serviceutils

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/company_reporting/internal/apperror"
	"github.com/locvowork/company_reporting/internal/logger"
)

// APIResponse is the JSON envelope of every API reply.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// ResponseError logs err and replies with message. Code carries the
// apperror code of err.
func ResponseError(c echo.Context, status int, message string, err error) error {
	resp := APIResponse{Success: false, Message: message}
	if err != nil {
		resp.Code = string(apperror.GetCode(err))
		resp.Error = err.Error()
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
	}
	return c.JSON(status, resp)
}

// StatusFor maps an apperror code to an HTTP status.
func StatusFor(err error) int {
	switch apperror.GetCode(err) {
	case apperror.CodeNotFound:
		return http.StatusNotFound
	case apperror.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
