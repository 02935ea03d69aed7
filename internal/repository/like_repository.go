package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrLikeNotFound = errors.New("like not found")
	ErrAlreadyLiked = errors.New("post already liked by this user")
)

// LikeRepository is the ledger of which users liked which posts.
// Counts are always derived by counting rows at read time, never cached
// on the post, so they stay consistent with the ledger.
type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) HasLiked(postID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *LikeRepository) CountLikes(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// AddLike records a like for the (post, user) pair.
// The check-then-insert has a race window between two concurrent likes from
// the same user; the unique index on (post_id, user_id) is the authoritative
// safeguard, and a duplicate-key failure is reported as ErrAlreadyLiked just
// like the pre-check.
func (r *LikeRepository) AddLike(postID, userID uuid.UUID) error {
	exists, err := r.postExists(postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrPostNotFound
	}

	liked, err := r.HasLiked(postID, userID)
	if err != nil {
		return err
	}
	if liked {
		return ErrAlreadyLiked
	}

	like := &models.Like{
		ID:     uuid.New(),
		PostID: postID,
		UserID: userID,
	}
	if err := r.db.Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

// RemoveLike deletes the like for the (post, user) pair and returns the
// post's like count re-read after the deletion, so the returned count has
// already excluded the removed like.
func (r *LikeRepository) RemoveLike(postID, userID uuid.UUID) (int64, error) {
	exists, err := r.postExists(postID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrPostNotFound
	}

	result := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrLikeNotFound
	}

	// Fresh count after the delete; a count captured before it would be stale.
	return r.CountLikes(postID)
}

func (r *LikeRepository) postExists(postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
