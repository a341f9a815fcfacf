package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/middleware"
	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

// UserHandler serves the authenticated user's own profile and point balance.
type UserHandler struct {
	userService        *service.UserService
	consumptionService *service.ConsumptionService
}

type updateProfileRequest struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func NewUserHandler(userService *service.UserService, consumptionService *service.ConsumptionService) *UserHandler {
	return &UserHandler{
		userService:        userService,
		consumptionService: consumptionService,
	}
}

func RegisterUserRoutes(group *gin.RouterGroup, authService *service.AuthService, userService *service.UserService, consumptionService *service.ConsumptionService) {
	handler := NewUserHandler(userService, consumptionService)
	authed := group.Group("", middleware.JWTAuth(authService))
	authed.GET("/users/me", handler.Me)
	authed.PUT("/users/me", handler.UpdateMe)
	authed.GET("/my-points", handler.MyPoints)
	authed.GET("/my-points/history", handler.MyPointsHistory)
}

func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(c.Request.Context(), user.ID, service.UpdateProfileRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		handleUserServiceError(c, err)
		return
	}

	response.OK(c, updated)
}

func (h *UserHandler) MyPoints(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	summary, err := h.consumptionService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		response.Internal(c)
		return
	}

	response.OK(c, summary)
}

func (h *UserHandler) MyPointsHistory(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	skip, limit := parsePagination(c)
	history, err := h.consumptionService.History(c.Request.Context(), user.ID, skip, limit)
	if err != nil {
		response.Internal(c)
		return
	}

	response.OK(c, history)
}
