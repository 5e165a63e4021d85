package xerr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the body of every error reply.
type Response struct {
	Message string  `json:"message"`
	Errors  []Issue `json:"errors,omitempty"`
}

// MessageResponse is the body of delete confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes data as the JSON body.
func Success(c *gin.Context, httpStatus int, data any) {
	c.JSON(httpStatus, data)
}

// Message writes {message}.
func Message(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, MessageResponse{Message: message})
}

// Error writes {message} with the given status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, Response{Message: message})
}

// AbortWithError writes the error and stops the handler chain.
func AbortWithError(c *gin.Context, httpStatus int, message string) {
	Error(c, httpStatus, message)
	c.Abort()
}

// Fail maps err to status and body. Known operator errors keep their own
// message; anything internal is reported with fallback so backend details
// never reach the client.
func Fail(c *gin.Context, err error, fallback string) {
	status := StatusOf(err)
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, Response{Message: ve.Err.Error(), Errors: ve.Issues})
		return
	}
	if status == http.StatusInternalServerError {
		Error(c, status, fallback)
		return
	}
	Error(c, status, rootMessage(err))
}

// rootMessage returns the message of the innermost sentinel in err's chain.
func rootMessage(err error) string {
	for _, group := range [][]error{notFound, badRequest, {ErrUnauthorized, ErrInvalidCredentials}} {
		for _, target := range group {
			if errors.Is(err, target) {
				return target.Error()
			}
		}
	}
	return err.Error()
}
