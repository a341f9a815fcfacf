package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidRole    = errors.New("invalid role")
	ErrSelfDeactivate = errors.New("cannot deactivate self")
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileRequest struct {
	Email    *string
	FullName *string
	Phone    *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := normalizeStringPointer(req.Email)
		if email == nil || !strings.Contains(*email, "@") {
			return nil, ErrInvalidInput
		}
		user.Email = *email
	}
	if req.FullName != nil {
		user.FullName = normalizeStringPointer(req.FullName)
	}
	if req.Phone != nil {
		user.Phone = normalizeStringPointer(req.Phone)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]*model.User, error) {
	return s.userRepo.List(ctx, repository.UserListFilter{
		Pagination: repository.Pagination{
			Limit:  clampIntToInt32(limit),
			Offset: clampIntToInt32(skip),
		},
	})
}

// UpdateRole is the administrator override; the only automatic transition is
// the user-to-business promotion on first business creation.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role model.UserRole) (*model.User, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *UserService) SetActive(ctx context.Context, operatorID, id int64, active bool) (*model.User, error) {
	if !active && operatorID == id {
		return nil, ErrSelfDeactivate
	}

	if err := s.userRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func clampIntToInt32(v int) int32 {
	const maxInt32 = int(^uint32(0) >> 1)
	if v > maxInt32 {
		return int32(maxInt32)
	}
	if v < 0 {
		return 0
	}
	return int32(v)
}
