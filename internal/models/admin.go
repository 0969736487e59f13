package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the bootstrap admin if no user with that name exists yet.
// An existing user keeps its password. Empty credentials are a no-op.
func EnsureAdmin(db *gorm.DB, username, password string) (created bool, err error) {
	if username == "" || password == "" {
		return false, nil
	}

	var existing AdminUser
	err = db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, eris.Wrap(err, "looking up admin user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, eris.Wrap(err, "hashing admin password")
	}
	user := AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := db.Create(&user).Error; err != nil {
		return false, eris.Wrap(err, "creating admin user")
	}
	return true, nil
}
