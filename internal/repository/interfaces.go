package repository

import (
	"context"
	"errors"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
)

var ErrNotFound = errors.New("not found")

type Pagination struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

type UserListFilter struct {
	Role       *model.UserRole `json:"role,omitempty"`
	Pagination Pagination      `json:"pagination"`
}

type BusinessListFilter struct {
	Category     *model.BusinessCategory `json:"category,omitempty"`
	Status       *model.BusinessStatus   `json:"status,omitempty"`
	OnlyApproved bool                    `json:"only_approved"`
	Pagination   Pagination              `json:"pagination"`
}

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id int64, role model.UserRole) error
	SetActive(ctx context.Context, id int64, active bool) error
	List(ctx context.Context, filter UserListFilter) ([]*model.User, error)
}

type BusinessRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Business, error)
	FindByOwner(ctx context.Context, ownerID int64) ([]*model.Business, error)
	// CreateWithOwnerPromotion inserts the business and, when promoteOwner is
	// set, escalates the owner's role from user to business in the same
	// transaction.
	CreateWithOwnerPromotion(ctx context.Context, business *model.Business, promoteOwner bool) error
	Update(ctx context.Context, business *model.Business) error
	UpdateStatus(ctx context.Context, id int64, status model.BusinessStatus) error
	ToggleFeatured(ctx context.Context, id int64) (*model.Business, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter BusinessListFilter) ([]*model.Business, error)
	ListFeatured(ctx context.Context, limit int32) ([]*model.Business, error)
}

type ImageRepository interface {
	FindByID(ctx context.Context, id int64) (*model.BusinessImage, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]*model.BusinessImage, error)
	// Create assigns position max+1 and, when image.IsPrimary is set, clears
	// the primary flag on every sibling in the same transaction.
	Create(ctx context.Context, image *model.BusinessImage) error
	// SetPrimary clears the primary flag on all sibling images and sets it on
	// the target in one transaction.
	SetPrimary(ctx context.Context, id int64) (*model.BusinessImage, error)
	Delete(ctx context.Context, id int64) error
}

type ConsumptionRepository interface {
	Create(ctx context.Context, consumption *model.Consumption) error
	ListByUser(ctx context.Context, userID int64, page Pagination) ([]*model.ConsumptionDetail, error)
	ListByBusiness(ctx context.Context, businessID int64, page Pagination) ([]*model.ConsumptionWithCustomer, error)
	SummarizeByUser(ctx context.Context, userID int64) ([]model.PointsSummary, error)
	CustomersByBusiness(ctx context.Context, businessID int64) ([]model.CustomerSummary, error)
}
