package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/project-tracker-api/internal/models"
)

// ErrAdminPasswordMissing is returned when the users table is empty and no
// bootstrap password was configured.
var ErrAdminPasswordMissing = errors.New("ADMIN_PASSWORD must be set to create the first administrator")

// SeedAdmin creates the first administrator when no user exists yet.
// It reports whether a user was created.
func SeedAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, ErrAdminPasswordMissing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	return true, nil
}
