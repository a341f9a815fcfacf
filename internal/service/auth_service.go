package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
	jwtutil "github.com/Habid-Marun/getsemani-vivo/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("token invalid")
)

type AuthService struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

type RegisterRequest struct {
	Email         string
	PasswordPlain string
	FullName      *string
	Phone         *string
}

func NewAuthService(userRepo repository.UserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = jwtutil.DefaultTokenTTL
	}
	return &AuthService{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") || req.PasswordPlain == "" {
		return nil, ErrInvalidInput
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PasswordPlain), 12)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.UserRoleUser,
		FullName:     normalizeStringPointer(req.FullName),
		Phone:        normalizeStringPointer(req.Phone),
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a signed access token whose subject
// is the user's email.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	claims := jwtutil.NewClaims(user.Email, s.tokenTTL)
	token, err := jwtutil.GenerateAccessToken(claims, s.secret)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ResolveToken parses an access token and loads the principal it names. The
// lookup happens on every request so role and activation changes apply
// immediately to outstanding tokens.
func (s *AuthService) ResolveToken(ctx context.Context, tokenStr string) (*model.User, error) {
	claims, err := jwtutil.ParseAccessToken(tokenStr, s.secret)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return user, nil
}

func normalizeStringPointer(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
