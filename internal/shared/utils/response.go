package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/shared/errors"
)

// ErrorBody is the wire shape of every failed API response.
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody is the wire shape of confirmations returned by mutating endpoints.
type MessageBody struct {
	Message string `json:"message"`
}

// OKResponse writes data as the bare JSON body with status 200.
func OKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// MessageResponse writes {"message": message} with status 200.
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorResponseWithError maps err onto the API error taxonomy. Errors that are
// not AppErrors never leak their text.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		ErrorResponse(c, appErr.Code, appErr.Message)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, errors.InternalMessage)
}
