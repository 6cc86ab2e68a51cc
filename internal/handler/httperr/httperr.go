package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error body every endpoint returns. Status is carried for
// the error middleware and never serialized.
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// Abort records err on the gin context for the logging middleware and writes
// the error body. The original error is preserved for monitoring.
func Abort(c *gin.Context, status int, err error, msg string) {
	resp := Response{Status: status, Error: msg}

	if err != nil {
		_ = c.Error(gin.Error{
			Err:  err,
			Type: gin.ErrorTypePublic,
			Meta: resp,
		})
	}
	c.AbortWithStatusJSON(status, resp)
}
