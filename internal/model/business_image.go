package model

import "time"

// BusinessImage belongs to one business. At most one image per business
// carries IsPrimary; Position is assigned as max+1 at insertion and is
// never renumbered when siblings are deleted.
type BusinessImage struct {
	ID         int64     `db:"id" json:"id"`
	BusinessID int64     `db:"business_id" json:"business_id"`
	Filename   string    `db:"filename" json:"filename"`
	URL        string    `db:"url" json:"url"`
	IsPrimary  bool      `db:"is_primary" json:"is_primary"`
	Position   int       `db:"position" json:"order"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
