package model

import "time"

type BusinessCategory string

const (
	BusinessCategoryBar        BusinessCategory = "bar"
	BusinessCategoryRestaurant BusinessCategory = "restaurant"
	BusinessCategoryCafe       BusinessCategory = "cafe"
	BusinessCategoryHostel     BusinessCategory = "hostel"
	BusinessCategoryHotel      BusinessCategory = "hotel"
	BusinessCategoryTourGuide  BusinessCategory = "tour_guide"
	BusinessCategoryShop       BusinessCategory = "shop"
	BusinessCategoryArtGallery BusinessCategory = "art_gallery"
	BusinessCategoryRental     BusinessCategory = "rental"
	BusinessCategoryOther      BusinessCategory = "other"
)

func (c BusinessCategory) Valid() bool {
	switch c {
	case BusinessCategoryBar, BusinessCategoryRestaurant, BusinessCategoryCafe,
		BusinessCategoryHostel, BusinessCategoryHotel, BusinessCategoryTourGuide,
		BusinessCategoryShop, BusinessCategoryArtGallery, BusinessCategoryRental,
		BusinessCategoryOther:
		return true
	}
	return false
}

type BusinessStatus string

const (
	BusinessStatusPending   BusinessStatus = "pending"
	BusinessStatusApproved  BusinessStatus = "approved"
	BusinessStatusRejected  BusinessStatus = "rejected"
	BusinessStatusSuspended BusinessStatus = "suspended"
)

func (s BusinessStatus) Valid() bool {
	switch s {
	case BusinessStatusPending, BusinessStatusApproved, BusinessStatusRejected, BusinessStatusSuspended:
		return true
	}
	return false
}

// Business is owned by exactly one user. A new business always starts in
// pending status; only approved businesses are publicly visible.
type Business struct {
	ID                int64            `db:"id" json:"id"`
	Name              string           `db:"name" json:"name"`
	Description       *string          `db:"description" json:"description,omitempty"`
	Category          BusinessCategory `db:"category" json:"category"`
	Phone             *string          `db:"phone" json:"phone,omitempty"`
	Email             *string          `db:"email" json:"email,omitempty"`
	Website           *string          `db:"website" json:"website,omitempty"`
	Instagram         *string          `db:"instagram" json:"instagram,omitempty"`
	Address           string           `db:"address" json:"address"`
	Latitude          *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude         *float64         `db:"longitude" json:"longitude,omitempty"`
	ScheduleMonday    *string          `db:"schedule_monday" json:"schedule_monday,omitempty"`
	ScheduleTuesday   *string          `db:"schedule_tuesday" json:"schedule_tuesday,omitempty"`
	ScheduleWednesday *string          `db:"schedule_wednesday" json:"schedule_wednesday,omitempty"`
	ScheduleThursday  *string          `db:"schedule_thursday" json:"schedule_thursday,omitempty"`
	ScheduleFriday    *string          `db:"schedule_friday" json:"schedule_friday,omitempty"`
	ScheduleSaturday  *string          `db:"schedule_saturday" json:"schedule_saturday,omitempty"`
	ScheduleSunday    *string          `db:"schedule_sunday" json:"schedule_sunday,omitempty"`
	PointsPer10000    int              `db:"points_per_10000" json:"points_per_10000"`
	Status            BusinessStatus   `db:"status" json:"status"`
	IsFeatured        bool             `db:"is_featured" json:"is_featured"`
	OwnerID           int64            `db:"owner_id" json:"owner_id"`
	CreatedAt         time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time        `db:"updated_at" json:"updated_at"`
}
