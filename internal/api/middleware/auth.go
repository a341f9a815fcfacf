package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

const currentUserContextKey = "current_user"

// JWTAuth validates the bearer token and loads its principal from the
// database, so role and activation changes take effect on the very next
// request rather than at token expiry.
func JWTAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		user, err := authService.ResolveToken(c.Request.Context(), tokenString)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				response.Unauthorized(c, "token expired")
			case errors.Is(err, service.ErrAccountDisabled):
				response.Unauthorized(c, "inactive user")
			default:
				response.Unauthorized(c, "could not validate credentials")
			}
			c.Abort()
			return
		}

		c.Set(currentUserContextKey, user)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			response.Forbidden(c, "admin privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	val, ok := c.Get(currentUserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}
