package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/pagination"
	"gorm.io/gorm"
)

// Feed ordering criteria. Anything else falls back to OrderByCreatedAt,
// matching the lenient query-param handling of the HTTP surface.
const (
	OrderByCreatedAt  = "createdAt"
	OrderByLikesCount = "likesCount"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListFilter selects and orders a feed page.
type ListFilter struct {
	Username string // filter by author username, empty = all authors
	OrderBy  string
	Order    string
	Page     pagination.Params
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) GetPostByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", id).First(&post).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

// UpdateContent replaces the post's content and advances updated_at.
func (r *PostRepository) UpdateContent(id uuid.UUID, content string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Update("content", content).Error
}

// ListPosts returns one feed page plus the total number of matching posts.
// Each row joins the author's username and a like count derived from the
// likes table at read time, so counts never go stale. A post whose owner
// was deleted concurrently comes back with an empty username (LEFT JOIN).
func (r *PostRepository) ListPosts(filter ListFilter) ([]models.FeedPost, int64, error) {
	orderColumn := "posts.created_at"
	if filter.OrderBy == OrderByLikesCount {
		orderColumn = "likes_count"
	}
	direction := "DESC"
	if filter.Order == OrderAsc {
		direction = "ASC"
	}

	query := r.db.Model(&models.Post{}).
		Select("posts.id, posts.content, posts.created_at, posts.updated_at, posts.user_id, users.username, COUNT(likes.id) AS likes_count").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN likes ON likes.post_id = posts.id").
		Group("posts.id, posts.content, posts.created_at, posts.updated_at, posts.user_id, users.username")

	countQuery := r.db.Model(&models.Post{}).
		Joins("LEFT JOIN users ON users.id = posts.user_id")

	if filter.Username != "" {
		query = query.Where("users.username = ?", filter.Username)
		countQuery = countQuery.Where("users.username = ?", filter.Username)
	}

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.FeedPost
	err := query.
		// Secondary order on id keeps pages stable when the primary key ties.
		Order(orderColumn + " " + direction + ", posts.id ASC").
		Limit(filter.Page.PageSize).
		Offset(filter.Page.Offset()).
		Scan(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
