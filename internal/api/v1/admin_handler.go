package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/middleware"
	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

// AdminHandler serves the moderation surface: user management and business
// approval.
type AdminHandler struct {
	userService     *service.UserService
	businessService *service.BusinessService
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func NewAdminHandler(userService *service.UserService, businessService *service.BusinessService) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		businessService: businessService,
	}
}

func RegisterAdminRoutes(group *gin.RouterGroup, authService *service.AuthService, userService *service.UserService, businessService *service.BusinessService) {
	handler := NewAdminHandler(userService, businessService)
	admin := group.Group("/admin", middleware.JWTAuth(authService), middleware.RequireAdmin())

	admin.GET("/users", handler.ListUsers)
	admin.GET("/users/:id", handler.GetUser)
	admin.PUT("/users/:id/role", handler.UpdateUserRole)
	admin.PUT("/users/:id/activate", handler.ActivateUser)
	admin.PUT("/users/:id/deactivate", handler.DeactivateUser)

	admin.GET("/businesses", handler.ListBusinesses)
	admin.GET("/businesses/pending", handler.ListPendingBusinesses)
	admin.PUT("/businesses/:id/status", handler.UpdateBusinessStatus)
	admin.PUT("/businesses/:id/featured", handler.ToggleBusinessFeatured)
	admin.DELETE("/businesses/:id", handler.DeleteBusiness)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	skip, limit := parsePagination(c)

	users, err := h.userService.List(c.Request.Context(), skip, limit)
	if err != nil {
		response.Internal(c)
		return
	}

	response.OK(c, users)
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleUserServiceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, err := h.userService.UpdateRole(c.Request.Context(), id, model.UserRole(req.Role))
	if err != nil {
		handleUserServiceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AdminHandler) ActivateUser(c *gin.Context) {
	h.setUserActive(c, true)
}

func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	h.setUserActive(c, false)
}

func (h *AdminHandler) setUserActive(c *gin.Context, active bool) {
	operator, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.SetActive(c.Request.Context(), operator.ID, id, active)
	if err != nil {
		handleUserServiceError(c, err)
		return
	}

	response.OK(c, user)
}

func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	skip, limit := parsePagination(c)

	var status *model.BusinessStatus
	if raw := c.Query("status"); raw != "" {
		value := model.BusinessStatus(raw)
		status = &value
	}
	var category *model.BusinessCategory
	if raw := c.Query("category"); raw != "" {
		value := model.BusinessCategory(raw)
		category = &value
	}

	businesses, err := h.businessService.AdminList(c.Request.Context(), skip, limit, status, category)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, businesses)
}

func (h *AdminHandler) ListPendingBusinesses(c *gin.Context) {
	skip, limit := parsePagination(c)

	status := model.BusinessStatusPending
	businesses, err := h.businessService.AdminList(c.Request.Context(), skip, limit, &status, nil)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, businesses)
}

func (h *AdminHandler) UpdateBusinessStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	business, err := h.businessService.SetStatus(c.Request.Context(), id, model.BusinessStatus(req.Status))
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, business)
}

func (h *AdminHandler) ToggleBusinessFeatured(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	business, err := h.businessService.ToggleFeatured(c.Request.Context(), id)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, business)
}

func (h *AdminHandler) DeleteBusiness(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	business, err := h.businessService.GetAuthorizedAdmin(c.Request.Context(), id)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	if err := h.businessService.AdminDelete(c.Request.Context(), id); err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": fmt.Sprintf("business '%s' deleted", business.Name)})
}
