package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body for machine-facing endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondWithError writes a JSON error body.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// PlainText writes a bare text body, used for the not-found responses of pages.
func PlainText(c *gin.Context, statusCode int, message string) {
	c.String(statusCode, message)
}

func NotFoundText(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	PlainText(c, http.StatusNotFound, message)
}

// InternalErrorPage renders the generic failure page.
func InternalErrorPage(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again."
	}
	c.HTML(http.StatusInternalServerError, "error.html", gin.H{
		"Title":   "Error",
		"Message": message,
	})
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Something went wrong. Please try again."
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Too many attempts. Please wait a minute and try again."
	}
	RespondWithError(c, http.StatusTooManyRequests, AuthTooManyAttempts, message)
}

// ParseAndRespond parses err and writes it as JSON.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	RespondWithError(c, statusCode, errorInfo.Code, errorInfo.Message)
}
