package models

import "time"

// User is a consumer account. PasswordHash never leaves the API.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(255);not null" validate:"required,min=2,max=255"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,max=20"`
	Address      string    `json:"address" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AdminUser is a panel account, kept in its own table so storefront
// credentials can never open admin routes.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,min=3,max=255"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
