package model

import "time"

// Consumption is an append-only ledger entry. PointsEarned is computed once
// at creation time and never recalculated; point totals are always derived
// by summing ledger rows.
type Consumption struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"user_id"`
	BusinessID     int64     `db:"business_id" json:"business_id"`
	Amount         float64   `db:"amount" json:"amount"`
	PointsEarned   int       `db:"points_earned" json:"points_earned"`
	Description    *string   `db:"description" json:"description,omitempty"`
	RegisteredByID int64     `db:"registered_by_id" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// ConsumptionDetail is a ledger row joined with its business, as shown in a
// user's point history.
type ConsumptionDetail struct {
	ID               int64            `json:"id"`
	Amount           float64          `json:"amount"`
	PointsEarned     int              `json:"points_earned"`
	Description      *string          `json:"description,omitempty"`
	BusinessName     string           `json:"business_name"`
	BusinessCategory BusinessCategory `json:"business_category"`
	CreatedAt        time.Time        `json:"created_at"`
}

// ConsumptionWithCustomer is a ledger row joined with the earning user, as
// shown to the business operator.
type ConsumptionWithCustomer struct {
	ID           int64     `json:"id"`
	Amount       float64   `json:"amount"`
	PointsEarned int       `json:"points_earned"`
	Description  *string   `json:"description,omitempty"`
	UserEmail    string    `json:"user_email"`
	UserName     *string   `json:"user_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PointsSummary aggregates a user's ledger for one business.
type PointsSummary struct {
	BusinessID   int64   `json:"business_id"`
	BusinessName string  `json:"business_name"`
	TotalPoints  int64   `json:"total_points"`
	TotalSpent   float64 `json:"total_spent"`
	VisitCount   int64   `json:"visit_count"`
}

// UserPointsSummary aggregates a user's full ledger across businesses.
type UserPointsSummary struct {
	TotalPoints       int64           `json:"total_points"`
	TotalSpent        float64         `json:"total_spent"`
	BusinessesVisited int             `json:"businesses_visited"`
	PointsByBusiness  []PointsSummary `json:"points_by_business"`
}

// CustomerSummary aggregates one customer's ledger at a business.
type CustomerSummary struct {
	UserID      int64   `json:"user_id"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name,omitempty"`
	TotalPoints int64   `json:"total_points"`
	TotalSpent  float64 `json:"total_spent"`
	VisitCount  int64   `json:"visit_count"`
}
