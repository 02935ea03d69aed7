package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail looks up a user by email. Emails are stored lowercase,
// so callers must normalize before querying.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetUserByUsername looks up a user by username (case-sensitive).
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UpdateProfile updates only the supplied fields. Password and role are
// never mutable through this path.
func (r *UserRepository) UpdateProfile(id uuid.UUID, updates map[string]interface{}) (*models.User, error) {
	if len(updates) > 0 {
		err := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	return r.GetUserByID(id)
}

// DeleteUser removes the user row. Returns true iff a row was removed.
// The user's posts and likes go with it via the FK cascades.
func (r *UserRepository) DeleteUser(id uuid.UUID) (bool, error) {
	result := r.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
