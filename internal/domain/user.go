package domain

import (
	"context"
	"time"
)

const (
	RoleAdmin    = "ADMIN"
	RoleArtisan  = "ARTISAN"
	RoleCustomer = "CUSTOMER"
)

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleArtisan || r == RoleCustomer
}

type User struct {
	ID           string     `gorm:"primaryKey;size:32" json:"id"`
	Name         string     `gorm:"size:100;not null" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         string     `gorm:"size:16;not null;default:CUSTOMER;index" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	PhoneNumber  string     `gorm:"size:20" json:"phoneNumber,omitempty"`
	NationalID   string     `gorm:"size:32" json:"nationalId,omitempty"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserFilter struct {
	Page     int
	Limit    int
	Role     string
	IsActive *bool
	Search   string // name/email 模糊搜
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f UserFilter) ([]User, int64, error)
	Update(ctx context.Context, id string, fields map[string]any) (*User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	CountByRole(ctx context.Context, role string) (int64, error)
}
