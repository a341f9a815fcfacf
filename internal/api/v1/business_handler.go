package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

// BusinessHandler serves the public, unauthenticated directory. Only
// approved businesses are visible here; everything else reads as missing.
type BusinessHandler struct {
	businessService *service.BusinessService
	imageService    *service.ImageService
}

func NewBusinessHandler(businessService *service.BusinessService, imageService *service.ImageService) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		imageService:    imageService,
	}
}

func RegisterBusinessRoutes(group *gin.RouterGroup, businessService *service.BusinessService, imageService *service.ImageService) {
	handler := NewBusinessHandler(businessService, imageService)
	businesses := group.Group("/businesses")
	businesses.GET("", handler.List)
	businesses.GET("/featured", handler.ListFeatured)
	businesses.GET("/:id", handler.Get)
	businesses.GET("/:id/images", handler.ListImages)
}

func (h *BusinessHandler) List(c *gin.Context) {
	skip, limit := parsePagination(c)

	var category *model.BusinessCategory
	if raw := c.Query("category"); raw != "" {
		value := model.BusinessCategory(raw)
		category = &value
	}

	businesses, err := h.businessService.ListPublic(c.Request.Context(), skip, limit, category)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, businesses)
}

func (h *BusinessHandler) ListFeatured(c *gin.Context) {
	businesses, err := h.businessService.ListFeatured(c.Request.Context())
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, businesses)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	business, err := h.businessService.GetPublic(c.Request.Context(), id)
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, business)
}

func (h *BusinessHandler) ListImages(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	images, err := h.imageService.ListPublic(c.Request.Context(), id)
	if err != nil {
		handleImageServiceError(c, err)
		return
	}

	response.OK(c, images)
}
