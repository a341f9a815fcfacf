package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Habid-Marun/getsemani-vivo/internal/api/middleware"
	"github.com/Habid-Marun/getsemani-vivo/internal/api/response"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/service"
)

// MyBusinessHandler serves the owner-facing surface: business CRUD, image
// management and the consumption ledger.
type MyBusinessHandler struct {
	businessService    *service.BusinessService
	imageService       *service.ImageService
	consumptionService *service.ConsumptionService
}

type createBusinessRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       *string  `json:"description"`
	Category          string   `json:"category"`
	Phone             *string  `json:"phone"`
	Email             *string  `json:"email"`
	Website           *string  `json:"website"`
	Instagram         *string  `json:"instagram"`
	Address           string   `json:"address" binding:"required"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	ScheduleMonday    *string  `json:"schedule_monday"`
	ScheduleTuesday   *string  `json:"schedule_tuesday"`
	ScheduleWednesday *string  `json:"schedule_wednesday"`
	ScheduleThursday  *string  `json:"schedule_thursday"`
	ScheduleFriday    *string  `json:"schedule_friday"`
	ScheduleSaturday  *string  `json:"schedule_saturday"`
	ScheduleSunday    *string  `json:"schedule_sunday"`
	PointsPer10000    int      `json:"points_per_10000"`
}

type updateBusinessRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Category          *string  `json:"category"`
	Phone             *string  `json:"phone"`
	Email             *string  `json:"email"`
	Website           *string  `json:"website"`
	Instagram         *string  `json:"instagram"`
	Address           *string  `json:"address"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	ScheduleMonday    *string  `json:"schedule_monday"`
	ScheduleTuesday   *string  `json:"schedule_tuesday"`
	ScheduleWednesday *string  `json:"schedule_wednesday"`
	ScheduleThursday  *string  `json:"schedule_thursday"`
	ScheduleFriday    *string  `json:"schedule_friday"`
	ScheduleSaturday  *string  `json:"schedule_saturday"`
	ScheduleSunday    *string  `json:"schedule_sunday"`
	PointsPer10000    *int     `json:"points_per_10000"`
}

type registerConsumptionRequest struct {
	UserEmail   string  `json:"user_email" binding:"required,email"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
}

func NewMyBusinessHandler(businessService *service.BusinessService, imageService *service.ImageService, consumptionService *service.ConsumptionService) *MyBusinessHandler {
	return &MyBusinessHandler{
		businessService:    businessService,
		imageService:       imageService,
		consumptionService: consumptionService,
	}
}

func RegisterMyBusinessRoutes(group *gin.RouterGroup, authService *service.AuthService, businessService *service.BusinessService, imageService *service.ImageService, consumptionService *service.ConsumptionService) {
	handler := NewMyBusinessHandler(businessService, imageService, consumptionService)
	mine := group.Group("/my-businesses", middleware.JWTAuth(authService))
	mine.GET("", handler.List)
	mine.POST("", handler.Create)
	mine.PUT("/:id", handler.Update)
	mine.DELETE("/:id", handler.Delete)
	mine.GET("/:id/images", handler.ListImages)
	mine.POST("/:id/images", handler.UploadImage)
	mine.DELETE("/:id/images/:image_id", handler.DeleteImage)
	mine.PUT("/:id/images/:image_id/primary", handler.SetPrimaryImage)
	mine.GET("/:id/consumptions", handler.ListConsumptions)
	mine.POST("/:id/consumptions", handler.RegisterConsumption)
	mine.GET("/:id/customers", handler.ListCustomers)
}

func (h *MyBusinessHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	businesses, err := h.businessService.ListByOwner(c.Request.Context(), user.ID)
	if err != nil {
		response.Internal(c)
		return
	}

	response.OK(c, businesses)
}

func (h *MyBusinessHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	business, err := h.businessService.CreateForOwner(c.Request.Context(), user, service.CreateBusinessRequest{
		Name:              req.Name,
		Description:       req.Description,
		Category:          model.BusinessCategory(req.Category),
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		Instagram:         req.Instagram,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ScheduleMonday:    req.ScheduleMonday,
		ScheduleTuesday:   req.ScheduleTuesday,
		ScheduleWednesday: req.ScheduleWednesday,
		ScheduleThursday:  req.ScheduleThursday,
		ScheduleFriday:    req.ScheduleFriday,
		ScheduleSaturday:  req.ScheduleSaturday,
		ScheduleSunday:    req.ScheduleSunday,
		PointsPer10000:    req.PointsPer10000,
	})
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.Created(c, business)
}

func (h *MyBusinessHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	var category *model.BusinessCategory
	if req.Category != nil {
		value := model.BusinessCategory(*req.Category)
		category = &value
	}

	business, err := h.businessService.UpdateOwned(c.Request.Context(), user, id, service.UpdateBusinessRequest{
		Name:              req.Name,
		Description:       req.Description,
		Category:          category,
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		Instagram:         req.Instagram,
		Address:           req.Address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ScheduleMonday:    req.ScheduleMonday,
		ScheduleTuesday:   req.ScheduleTuesday,
		ScheduleWednesday: req.ScheduleWednesday,
		ScheduleThursday:  req.ScheduleThursday,
		ScheduleFriday:    req.ScheduleFriday,
		ScheduleSaturday:  req.ScheduleSaturday,
		ScheduleSunday:    req.ScheduleSunday,
		PointsPer10000:    req.PointsPer10000,
	})
	if err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, business)
}

func (h *MyBusinessHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.businessService.DeleteOwned(c.Request.Context(), user, id); err != nil {
		handleBusinessServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "business deleted"})
}

func (h *MyBusinessHandler) ListImages(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	images, err := h.imageService.ListOwned(c.Request.Context(), user, id)
	if err != nil {
		handleImageServiceError(c, err)
		return
	}

	response.OK(c, images)
}

func (h *MyBusinessHandler) UploadImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read file")
		return
	}
	defer file.Close()

	isPrimary := c.PostForm("is_primary") == "true"

	image, err := h.imageService.Upload(c.Request.Context(), user, id, service.UploadImageRequest{
		OriginalFilename: fileHeader.Filename,
		ContentType:      fileHeader.Header.Get("Content-Type"),
		Size:             fileHeader.Size,
		Content:          file,
		IsPrimary:        isPrimary,
	})
	if err != nil {
		handleImageServiceError(c, err)
		return
	}

	response.Created(c, image)
}

func (h *MyBusinessHandler) DeleteImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), user, id, imageID); err != nil {
		handleImageServiceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "image deleted"})
}

func (h *MyBusinessHandler) SetPrimaryImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "image_id")
	if !ok {
		return
	}

	image, err := h.imageService.SetPrimary(c.Request.Context(), user, id, imageID)
	if err != nil {
		handleImageServiceError(c, err)
		return
	}

	response.OK(c, image)
}

func (h *MyBusinessHandler) ListConsumptions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	skip, limit := parsePagination(c)
	consumptions, err := h.consumptionService.ListForBusiness(c.Request.Context(), user, id, skip, limit)
	if err != nil {
		handleConsumptionServiceError(c, err)
		return
	}

	response.OK(c, consumptions)
}

func (h *MyBusinessHandler) RegisterConsumption(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req registerConsumptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	consumption, err := h.consumptionService.Register(c.Request.Context(), user, id, service.RegisterConsumptionRequest{
		CustomerEmail: req.UserEmail,
		Amount:        req.Amount,
		Description:   req.Description,
	})
	if err != nil {
		handleConsumptionServiceError(c, err)
		return
	}

	response.Created(c, consumption)
}

func (h *MyBusinessHandler) ListCustomers(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Unauthorized(c, "not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customers, err := h.consumptionService.Customers(c.Request.Context(), user, id)
	if err != nil {
		handleConsumptionServiceError(c, err)
		return
	}

	response.OK(c, customers)
}

func handleImageServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrImageNotFound):
		response.NotFound(c, "image not found")
	case errors.Is(err, service.ErrImageTooLarge):
		response.BadRequest(c, fmt.Sprintf("file too large, maximum %d MB", service.MaxImageSize>>20))
	case errors.Is(err, service.ErrInvalidImageType):
		response.BadRequest(c, "file type not allowed, use jpg, jpeg, png or webp")
	default:
		handleBusinessServiceError(c, err)
	}
}

func handleConsumptionServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBusinessNotApproved):
		response.BadRequest(c, "business must be approved to register consumptions")
	case errors.Is(err, service.ErrCustomerNotFound):
		response.NotFound(c, "no registered user with that email")
	case errors.Is(err, service.ErrInvalidAmount):
		response.BadRequest(c, "amount must not be negative")
	default:
		handleBusinessServiceError(c, err)
	}
}
