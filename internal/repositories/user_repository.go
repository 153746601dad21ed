package repositories

import "casabeleza/internal/models"

// UserRepository defines the interface for consumer account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
}

// AdminRepository defines the interface for admin account data access.
type AdminRepository interface {
	Create(admin *models.AdminUser) error
	GetByUsername(username string) (*models.AdminUser, error)
	GetByID(id uint) (*models.AdminUser, error)
}
