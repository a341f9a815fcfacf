package service

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Habid-Marun/getsemani-vivo/internal/metrics"
	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

var (
	ErrBusinessNotApproved = errors.New("business not approved")
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrInvalidAmount       = errors.New("invalid amount")
)

type ConsumptionService struct {
	consumptionRepo repository.ConsumptionRepository
	businessRepo    repository.BusinessRepository
	userRepo        repository.UserRepository
}

type RegisterConsumptionRequest struct {
	CustomerEmail string
	Amount        float64
	Description   *string
}

func NewConsumptionService(consumptionRepo repository.ConsumptionRepository, businessRepo repository.BusinessRepository, userRepo repository.UserRepository) *ConsumptionService {
	return &ConsumptionService{
		consumptionRepo: consumptionRepo,
		businessRepo:    businessRepo,
		userRepo:        userRepo,
	}
}

// pointsEarned awards perTenThousand points for each complete 10000 units of
// spend. Partial blocks earn nothing; the result is frozen into the ledger row.
func pointsEarned(amount float64, perTenThousand int) int {
	if amount <= 0 || perTenThousand <= 0 {
		return 0
	}
	return int(math.Floor(amount/10000)) * perTenThousand
}

// Register appends a ledger entry for a customer's spend at a business. The
// caller must own the business (or be an admin) and the business must already
// be approved.
func (s *ConsumptionService) Register(ctx context.Context, actor *model.User, businessID int64, req RegisterConsumptionRequest) (*model.Consumption, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(actor, business) {
		return nil, ErrNotOwner
	}
	if business.Status != model.BusinessStatusApproved {
		return nil, ErrBusinessNotApproved
	}

	if req.Amount < 0 {
		return nil, ErrInvalidAmount
	}

	customer, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(req.CustomerEmail))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	consumption := &model.Consumption{
		UserID:         customer.ID,
		BusinessID:     business.ID,
		Amount:         req.Amount,
		PointsEarned:   pointsEarned(req.Amount, business.PointsPer10000),
		Description:    normalizeStringPointer(req.Description),
		RegisteredByID: actor.ID,
	}

	if err := s.consumptionRepo.Create(ctx, consumption); err != nil {
		return nil, err
	}
	metrics.ObserveConsumption(consumption.PointsEarned)

	return consumption, nil
}

// ListForBusiness returns the ledger entries a business operator sees, most
// recent first.
func (s *ConsumptionService) ListForBusiness(ctx context.Context, actor *model.User, businessID int64, skip, limit int) ([]*model.ConsumptionWithCustomer, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(actor, business) {
		return nil, ErrNotOwner
	}

	return s.consumptionRepo.ListByBusiness(ctx, businessID, repository.Pagination{
		Limit:  clampIntToInt32(limit),
		Offset: clampIntToInt32(skip),
	})
}

// Customers ranks a business's customers by accumulated points.
func (s *ConsumptionService) Customers(ctx context.Context, actor *model.User, businessID int64) ([]model.CustomerSummary, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if !isOwnerOrAdmin(actor, business) {
		return nil, ErrNotOwner
	}

	return s.consumptionRepo.CustomersByBusiness(ctx, businessID)
}

// History returns a user's own ledger entries, most recent first.
func (s *ConsumptionService) History(ctx context.Context, userID int64, skip, limit int) ([]*model.ConsumptionDetail, error) {
	return s.consumptionRepo.ListByUser(ctx, userID, repository.Pagination{
		Limit:  clampIntToInt32(limit),
		Offset: clampIntToInt32(skip),
	})
}

// Summary folds a user's per-business aggregates into one overall view.
func (s *ConsumptionService) Summary(ctx context.Context, userID int64) (*model.UserPointsSummary, error) {
	perBusiness, err := s.consumptionRepo.SummarizeByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &model.UserPointsSummary{
		BusinessesVisited: len(perBusiness),
		PointsByBusiness:  perBusiness,
	}
	if summary.PointsByBusiness == nil {
		summary.PointsByBusiness = []model.PointsSummary{}
	}
	for _, entry := range perBusiness {
		summary.TotalPoints += entry.TotalPoints
		summary.TotalSpent += entry.TotalSpent
	}

	return summary, nil
}
