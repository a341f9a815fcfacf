package service

import (
	"context"
	"testing"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

func TestPointsEarned(t *testing.T) {
	cases := []struct {
		name           string
		amount         float64
		perTenThousand int
		want           int
	}{
		{"zero amount", 0, 1, 0},
		{"below first block", 9999.99, 1, 0},
		{"exactly one block", 10000, 1, 1},
		{"partial second block", 19999, 1, 1},
		{"two blocks", 20000, 1, 2},
		{"multiplier applies per block", 50000, 3, 15},
		{"fractional amount rounds down", 35500.75, 2, 6},
		{"negative amount earns nothing", -10000, 1, 0},
		{"zero multiplier earns nothing", 50000, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pointsEarned(tc.amount, tc.perTenThousand); got != tc.want {
				t.Fatalf("pointsEarned(%v, %d) = %d, want %d", tc.amount, tc.perTenThousand, got, tc.want)
			}
		})
	}
}

type stubConsumptionRepo struct {
	repository.ConsumptionRepository
	summaries []model.PointsSummary
}

func (s *stubConsumptionRepo) SummarizeByUser(ctx context.Context, userID int64) ([]model.PointsSummary, error) {
	return s.summaries, nil
}

func TestSummary_FoldsPerBusinessAggregates(t *testing.T) {
	repo := &stubConsumptionRepo{summaries: []model.PointsSummary{
		{BusinessID: 1, BusinessName: "Café del Muro", TotalPoints: 12, TotalSpent: 125000, VisitCount: 4},
		{BusinessID: 2, BusinessName: "Bar La Plaza", TotalPoints: 3, TotalSpent: 38000, VisitCount: 2},
	}}
	svc := NewConsumptionService(repo, nil, nil)

	summary, err := svc.Summary(context.Background(), 42)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalPoints != 15 {
		t.Fatalf("expected total_points=15, got %d", summary.TotalPoints)
	}
	if summary.TotalSpent != 163000 {
		t.Fatalf("expected total_spent=163000, got %v", summary.TotalSpent)
	}
	if summary.BusinessesVisited != 2 {
		t.Fatalf("expected businesses_visited=2, got %d", summary.BusinessesVisited)
	}
	if len(summary.PointsByBusiness) != 2 {
		t.Fatalf("expected 2 per-business entries, got %d", len(summary.PointsByBusiness))
	}
}

func TestSummary_EmptyLedger(t *testing.T) {
	svc := NewConsumptionService(&stubConsumptionRepo{}, nil, nil)

	summary, err := svc.Summary(context.Background(), 42)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalPoints != 0 || summary.TotalSpent != 0 || summary.BusinessesVisited != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
	if summary.PointsByBusiness == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
