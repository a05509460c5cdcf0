package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminUser is the single administrative identity.
type AdminUser struct {
	ID           string     `json:"id" gorm:"column:id;type:varchar(64);primaryKey"`
	Username     string     `json:"username" gorm:"column:username;type:varchar(255);not null"`
	Email        string     `json:"email" gorm:"column:email;type:varchar(255);not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;type:text;not null"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at"`
	LastLogin    *time.Time `json:"lastLogin,omitempty" gorm:"column:last_login"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (a *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = newID()
	}
	return nil
}

// AdminLogin is the body of POST /admin/login.
type AdminLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminResponse is an AdminUser without its password hash.
type AdminResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (a AdminUser) Response() AdminResponse {
	return AdminResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLogin,
	}
}
