package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

type registerRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

// loginRequest follows the OAuth2 password form convention: the username
// field carries the email.
type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func RegisterAuthRoutes(group *gin.RouterGroup, authService *service.AuthService) {
	handler := NewAuthHandler(authService)
	group.POST("/register", handler.Register)
	group.POST("/login", handler.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		Email:         req.Email,
		PasswordPlain: req.Password,
		FullName:      req.FullName,
		Phone:         req.Phone,
	})
	if err != nil {
		handleAuthServiceError(c, err)
		return
	}

	response.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	token, _, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleAuthServiceError(c, err)
		return
	}

	response.OK(c, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func handleAuthServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "incorrect email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Unauthorized(c, "inactive user")
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, "email already registered")
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, "invalid input")
	default:
		response.Internal(c)
	}
}
