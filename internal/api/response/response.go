package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the uniform error envelope: every failure carries a single
// human-readable detail string.
type ErrorBody struct {
	Detail string `json:"detail"`
}

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func Fail(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{Detail: detail})
}

// Unauthorized answers with the bearer challenge alongside the error body.
func Unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, ErrorBody{Detail: detail})
}

func Forbidden(c *gin.Context, detail string) {
	c.JSON(http.StatusForbidden, ErrorBody{Detail: detail})
}

func NotFound(c *gin.Context, detail string) {
	c.JSON(http.StatusNotFound, ErrorBody{Detail: detail})
}

func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Detail: detail})
}

func Internal(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Detail: "internal error"})
}
