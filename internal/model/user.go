package model

import "time"

type UserRole string

const (
	UserRoleUser     UserRole = "user"
	UserRoleBusiness UserRole = "business"
	UserRoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleBusiness, UserRoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	FullName     *string   `db:"full_name" json:"full_name,omitempty"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
