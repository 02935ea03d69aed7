package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/utils"
)

// CreateTestUser creates a test user with a hashed password.
func CreateTestUser(username, email, password string, role models.Role) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}, nil
}

// CreateTestPost creates a post belonging to owner.
func CreateTestPost(owner *models.User, content string) *models.Post {
	return &models.Post{
		ID:      uuid.New(),
		UserID:  owner.ID,
		Content: content,
	}
}

// CreateTestPostAt creates a post with a fixed creation instant, for tests
// that depend on chronological ordering.
func CreateTestPostAt(owner *models.User, content string, createdAt time.Time) *models.Post {
	return &models.Post{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// CreateTestLike creates a like for the (post, user) pair.
func CreateTestLike(post *models.Post, user *models.User) *models.Like {
	return &models.Like{
		ID:     uuid.New(),
		PostID: post.ID,
		UserID: user.ID,
	}
}
