package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

func TestCreateWithOwnerPromotion_PromotesPlainUser(t *testing.T) {
	pool := startPostgresForTest(t)
	businessRepo := NewBusinessRepository(pool)
	userRepo := NewUserRepository(pool)
	ctx := context.Background()

	owner := seedUser(t, ctx, pool, "promote@example.com", model.UserRoleUser)

	business := &model.Business{
		Name:           "La Esquina",
		Category:       model.BusinessCategoryBar,
		Address:        "Calle San Juan 10",
		PointsPer10000: 2,
		Status:         model.BusinessStatusPending,
		OwnerID:        owner.ID,
	}
	if err := businessRepo.CreateWithOwnerPromotion(ctx, business, true); err != nil {
		t.Fatalf("create with promotion: %v", err)
	}
	if business.ID == 0 {
		t.Fatal("expected business id to be assigned")
	}

	reloaded, err := userRepo.FindByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("reload owner: %v", err)
	}
	if reloaded.Role != model.UserRoleBusiness {
		t.Fatalf("expected role=business, got %s", reloaded.Role)
	}
}

func TestCreateWithOwnerPromotion_AdminRoleUntouched(t *testing.T) {
	pool := startPostgresForTest(t)
	businessRepo := NewBusinessRepository(pool)
	userRepo := NewUserRepository(pool)
	ctx := context.Background()

	admin := seedUser(t, ctx, pool, "admin-owner@example.com", model.UserRoleAdmin)

	business := &model.Business{
		Name:           "Galería Central",
		Category:       model.BusinessCategoryArtGallery,
		Address:        "Plaza de la Trinidad 3",
		PointsPer10000: 1,
		Status:         model.BusinessStatusPending,
		OwnerID:        admin.ID,
	}
	if err := businessRepo.CreateWithOwnerPromotion(ctx, business, true); err != nil {
		t.Fatalf("create with promotion: %v", err)
	}

	reloaded, err := userRepo.FindByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if reloaded.Role != model.UserRoleAdmin {
		t.Fatalf("expected admin role preserved, got %s", reloaded.Role)
	}
}

func TestList_OnlyApprovedFilter(t *testing.T) {
	pool := startPostgresForTest(t)
	businessRepo := NewBusinessRepository(pool)
	ctx := context.Background()

	owner := seedUser(t, ctx, pool, "visibility@example.com", model.UserRoleBusiness)
	seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusPending)
	approved := seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusApproved)
	seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusRejected)

	listed, err := businessRepo.List(ctx, repository.BusinessListFilter{OnlyApproved: true})
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 approved business, got %d", len(listed))
	}
	if listed[0].ID != approved.ID {
		t.Fatalf("expected business %d, got %d", approved.ID, listed[0].ID)
	}
}

func TestListFeatured_ExcludesUnapproved(t *testing.T) {
	pool := startPostgresForTest(t)
	businessRepo := NewBusinessRepository(pool)
	ctx := context.Background()

	owner := seedUser(t, ctx, pool, "featured@example.com", model.UserRoleBusiness)
	pending := seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusPending)
	approved := seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusApproved)

	for _, id := range []int64{pending.ID, approved.ID} {
		if _, err := businessRepo.ToggleFeatured(ctx, id); err != nil {
			t.Fatalf("toggle featured %d: %v", id, err)
		}
	}

	featured, err := businessRepo.ListFeatured(ctx, 10)
	if err != nil {
		t.Fatalf("list featured: %v", err)
	}
	if len(featured) != 1 {
		t.Fatalf("expected 1 featured business, got %d", len(featured))
	}
	if featured[0].ID != approved.ID {
		t.Fatalf("expected business %d, got %d", approved.ID, featured[0].ID)
	}
}

func TestDelete_CascadesImagesAndLedger(t *testing.T) {
	pool := startPostgresForTest(t)
	businessRepo := NewBusinessRepository(pool)
	imageRepo := NewImageRepository(pool)
	consumptionRepo := NewConsumptionRepository(pool)
	ctx := context.Background()

	owner := seedUser(t, ctx, pool, "cascade-owner@example.com", model.UserRoleBusiness)
	customer := seedUser(t, ctx, pool, "cascade-customer@example.com", model.UserRoleUser)
	business := seedBusiness(t, ctx, pool, owner.ID, model.BusinessStatusApproved)

	image := &model.BusinessImage{
		BusinessID: business.ID,
		Filename:   "cascade.jpg",
		URL:        "/uploads/businesses/cascade.jpg",
	}
	if err := imageRepo.Create(ctx, image); err != nil {
		t.Fatalf("create image: %v", err)
	}
	consumption := &model.Consumption{
		UserID:         customer.ID,
		BusinessID:     business.ID,
		Amount:         25000,
		PointsEarned:   2,
		RegisteredByID: owner.ID,
	}
	if err := consumptionRepo.Create(ctx, consumption); err != nil {
		t.Fatalf("create consumption: %v", err)
	}

	if err := businessRepo.Delete(ctx, business.ID); err != nil {
		t.Fatalf("delete business: %v", err)
	}

	if _, err := imageRepo.FindByID(ctx, image.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected image cascade delete, got %v", err)
	}

	var ledgerCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM consumptions WHERE business_id = $1`, business.ID).Scan(&ledgerCount); err != nil {
		t.Fatalf("count ledger rows: %v", err)
	}
	if ledgerCount != 0 {
		t.Fatalf("expected ledger rows removed, got %d", ledgerCount)
	}
}
