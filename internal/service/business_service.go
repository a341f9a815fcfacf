package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
	ErrNotOwner         = errors.New("not the business owner")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidStatus    = errors.New("invalid status")
)

type BusinessService struct {
	businessRepo repository.BusinessRepository
}

type CreateBusinessRequest struct {
	Name              string
	Description       *string
	Category          model.BusinessCategory
	Phone             *string
	Email             *string
	Website           *string
	Instagram         *string
	Address           string
	Latitude          *float64
	Longitude         *float64
	ScheduleMonday    *string
	ScheduleTuesday   *string
	ScheduleWednesday *string
	ScheduleThursday  *string
	ScheduleFriday    *string
	ScheduleSaturday  *string
	ScheduleSunday    *string
	PointsPer10000    int
}

type UpdateBusinessRequest struct {
	Name              *string
	Description       *string
	Category          *model.BusinessCategory
	Phone             *string
	Email             *string
	Website           *string
	Instagram         *string
	Address           *string
	Latitude          *float64
	Longitude         *float64
	ScheduleMonday    *string
	ScheduleTuesday   *string
	ScheduleWednesday *string
	ScheduleThursday  *string
	ScheduleFriday    *string
	ScheduleSaturday  *string
	ScheduleSunday    *string
	PointsPer10000    *int
}

func NewBusinessService(businessRepo repository.BusinessRepository) *BusinessService {
	return &BusinessService{businessRepo: businessRepo}
}

// ListPublic returns approved businesses only; everything else is invisible
// to unauthenticated reads.
func (s *BusinessService) ListPublic(ctx context.Context, skip, limit int, category *model.BusinessCategory) ([]*model.Business, error) {
	if category != nil && !category.Valid() {
		return nil, ErrInvalidCategory
	}

	return s.businessRepo.List(ctx, repository.BusinessListFilter{
		Category:     category,
		OnlyApproved: true,
		Pagination: repository.Pagination{
			Limit:  clampIntToInt32(limit),
			Offset: clampIntToInt32(skip),
		},
	})
}

func (s *BusinessService) ListFeatured(ctx context.Context) ([]*model.Business, error) {
	return s.businessRepo.ListFeatured(ctx, 10)
}

// GetPublic treats an unapproved business exactly like a missing one.
func (s *BusinessService) GetPublic(ctx context.Context, id int64) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if business.Status != model.BusinessStatusApproved {
		return nil, ErrBusinessNotFound
	}
	return business, nil
}

func (s *BusinessService) ListByOwner(ctx context.Context, ownerID int64) ([]*model.Business, error) {
	return s.businessRepo.FindByOwner(ctx, ownerID)
}

// CreateForOwner creates the business in pending status and, if the owner
// still holds the plain user role, promotes them to business in the same
// transaction. The promotion happens at most once and is never reverted here;
// demotion is an administrator action.
func (s *BusinessService) CreateForOwner(ctx context.Context, owner *model.User, req CreateBusinessRequest) (*model.Business, error) {
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)
	if name == "" || address == "" {
		return nil, ErrInvalidInput
	}

	category := req.Category
	if category == "" {
		category = model.BusinessCategoryOther
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	points := req.PointsPer10000
	if points <= 0 {
		points = 1
	}

	business := &model.Business{
		Name:              name,
		Description:       normalizeStringPointer(req.Description),
		Category:          category,
		Phone:             normalizeStringPointer(req.Phone),
		Email:             normalizeStringPointer(req.Email),
		Website:           normalizeStringPointer(req.Website),
		Instagram:         normalizeStringPointer(req.Instagram),
		Address:           address,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		ScheduleMonday:    normalizeStringPointer(req.ScheduleMonday),
		ScheduleTuesday:   normalizeStringPointer(req.ScheduleTuesday),
		ScheduleWednesday: normalizeStringPointer(req.ScheduleWednesday),
		ScheduleThursday:  normalizeStringPointer(req.ScheduleThursday),
		ScheduleFriday:    normalizeStringPointer(req.ScheduleFriday),
		ScheduleSaturday:  normalizeStringPointer(req.ScheduleSaturday),
		ScheduleSunday:    normalizeStringPointer(req.ScheduleSunday),
		PointsPer10000:    points,
		Status:            model.BusinessStatusPending,
		OwnerID:           owner.ID,
	}

	promote := owner.Role == model.UserRoleUser
	if err := s.businessRepo.CreateWithOwnerPromotion(ctx, business, promote); err != nil {
		return nil, err
	}
	if promote {
		owner.Role = model.UserRoleBusiness
	}

	return business, nil
}

// GetAuthorized loads a business for a mutating caller: existence is checked
// first, ownership after, so non-owners of an existing business get a
// forbidden outcome rather than a not-found.
func (s *BusinessService) GetAuthorized(ctx context.Context, actor *model.User, id int64) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(actor, business) {
		return nil, ErrNotOwner
	}
	return business, nil
}

// UpdateOwned edits content fields. Status, feature flag and owner are out of
// reach here; those move only through the admin operations.
func (s *BusinessService) UpdateOwned(ctx context.Context, actor *model.User, id int64, req UpdateBusinessRequest) (*model.Business, error) {
	business, err := s.GetAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrInvalidInput
		}
		business.Name = name
	}
	if req.Description != nil {
		business.Description = normalizeStringPointer(req.Description)
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, ErrInvalidCategory
		}
		business.Category = *req.Category
	}
	if req.Phone != nil {
		business.Phone = normalizeStringPointer(req.Phone)
	}
	if req.Email != nil {
		business.Email = normalizeStringPointer(req.Email)
	}
	if req.Website != nil {
		business.Website = normalizeStringPointer(req.Website)
	}
	if req.Instagram != nil {
		business.Instagram = normalizeStringPointer(req.Instagram)
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, ErrInvalidInput
		}
		business.Address = address
	}
	if req.Latitude != nil {
		business.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		business.Longitude = req.Longitude
	}
	if req.ScheduleMonday != nil {
		business.ScheduleMonday = normalizeStringPointer(req.ScheduleMonday)
	}
	if req.ScheduleTuesday != nil {
		business.ScheduleTuesday = normalizeStringPointer(req.ScheduleTuesday)
	}
	if req.ScheduleWednesday != nil {
		business.ScheduleWednesday = normalizeStringPointer(req.ScheduleWednesday)
	}
	if req.ScheduleThursday != nil {
		business.ScheduleThursday = normalizeStringPointer(req.ScheduleThursday)
	}
	if req.ScheduleFriday != nil {
		business.ScheduleFriday = normalizeStringPointer(req.ScheduleFriday)
	}
	if req.ScheduleSaturday != nil {
		business.ScheduleSaturday = normalizeStringPointer(req.ScheduleSaturday)
	}
	if req.ScheduleSunday != nil {
		business.ScheduleSunday = normalizeStringPointer(req.ScheduleSunday)
	}
	if req.PointsPer10000 != nil {
		points := *req.PointsPer10000
		if points <= 0 {
			return nil, ErrInvalidInput
		}
		// Later multiplier changes never touch points already in the ledger.
		business.PointsPer10000 = points
	}

	if err := s.businessRepo.Update(ctx, business); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	return business, nil
}

func (s *BusinessService) DeleteOwned(ctx context.Context, actor *model.User, id int64) error {
	if _, err := s.GetAuthorized(ctx, actor, id); err != nil {
		return err
	}

	if err := s.businessRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}
	return nil
}

func (s *BusinessService) AdminList(ctx context.Context, skip, limit int, status *model.BusinessStatus, category *model.BusinessCategory) ([]*model.Business, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if category != nil && !category.Valid() {
		return nil, ErrInvalidCategory
	}

	return s.businessRepo.List(ctx, repository.BusinessListFilter{
		Status:   status,
		Category: category,
		Pagination: repository.Pagination{
			Limit:  clampIntToInt32(limit),
			Offset: clampIntToInt32(skip),
		},
	})
}

// SetStatus moves a business anywhere in the approval state machine. There
// are no hard transition restrictions; visibility gating does the real work.
func (s *BusinessService) SetStatus(ctx context.Context, id int64, status model.BusinessStatus) (*model.Business, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.businessRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

// GetAuthorizedAdmin loads a business for an admin-only operation regardless
// of its status.
func (s *BusinessService) GetAuthorizedAdmin(ctx context.Context, id int64) (*model.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}

// AdminDelete removes a business outright. Images and ledger rows go with it
// through the foreign key cascade.
func (s *BusinessService) AdminDelete(ctx context.Context, id int64) error {
	if err := s.businessRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBusinessNotFound
		}
		return err
	}
	return nil
}

func (s *BusinessService) ToggleFeatured(ctx context.Context, id int64) (*model.Business, error) {
	business, err := s.businessRepo.ToggleFeatured(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return business, nil
}
