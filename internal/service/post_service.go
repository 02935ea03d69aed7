package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/apperr"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/pagination"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/pkg/logger"
	"go.uber.org/zap"
)

// PostService orchestrates the post store and the like ledger behind the
// HTTP surface: creation, owner-only updates, feed listing and like toggling.
type PostService struct {
	postRepo *repository.PostRepository
	likeRepo *repository.LikeRepository
	userRepo *repository.UserRepository
}

func NewPostService(postRepo *repository.PostRepository, likeRepo *repository.LikeRepository, userRepo *repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		likeRepo: likeRepo,
		userRepo: userRepo,
	}
}

// ListInput is the raw, pre-validation shape of a feed request.
type ListInput struct {
	Page     int
	PageSize int
	Username string
	OrderBy  string
	Order    string
}

// ListPosts returns one ordered feed page. Unknown authors and pages past
// the end yield an empty list with correct pagination metadata, not an error.
func (s *PostService) ListPosts(input ListInput) ([]models.FeedPost, pagination.Pagination, error) {
	params, err := pagination.NewParams(input.Page, input.PageSize)
	if err != nil {
		return nil, pagination.Pagination{}, err
	}

	filter := repository.ListFilter{
		Username: input.Username,
		OrderBy:  input.OrderBy,
		Order:    input.Order,
		Page:     params,
	}

	posts, total, err := s.postRepo.ListPosts(filter)
	if err != nil {
		logger.Log.Error("Failed to list posts",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, pagination.Pagination{}, apperr.Internal("failed to list posts", err)
	}

	if posts == nil {
		posts = []models.FeedPost{}
	}

	return posts, params.Build(total), nil
}

// CreatePost persists a new post for ownerID. Content must be non-empty.
func (s *PostService) CreatePost(ownerID uuid.UUID, content string) (*models.FeedPost, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("content must not be empty")
	}

	post := &models.Post{
		ID:      uuid.New(),
		UserID:  ownerID,
		Content: content,
	}

	if err := s.postRepo.CreatePost(post); err != nil {
		logger.Log.Error("Failed to create post",
			zap.String("user_id", ownerID.String()),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to create post", err)
	}

	logger.Log.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", ownerID.String()),
	)

	return s.assembleFeedPost(post, 0)
}

// UpdatePost changes a post's content. Only the owner may do this.
func (s *PostService) UpdatePost(requesterID, postID uuid.UUID, content string) (*models.FeedPost, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Invalid("content must not be empty")
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apperr.Internal("failed to get post", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}
	if post.UserID != requesterID {
		logger.Log.Warn("Post update rejected: not the owner",
			zap.String("post_id", postID.String()),
			zap.String("requester_id", requesterID.String()),
		)
		return nil, apperr.Forbidden("only the owner can update this post")
	}

	if err := s.postRepo.UpdateContent(postID, content); err != nil {
		logger.Log.Error("Failed to update post",
			zap.String("post_id", postID.String()),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to update post", err)
	}

	updated, err := s.postRepo.GetPostByID(postID)
	if err != nil || updated == nil {
		return nil, apperr.Internal("failed to reload post", err)
	}

	count, err := s.likeRepo.CountLikes(postID)
	if err != nil {
		return nil, apperr.Internal("failed to count likes", err)
	}

	return s.assembleFeedPost(updated, count)
}

// LikePost records userID's like on postID and returns the post with a
// fresh like count.
func (s *PostService) LikePost(userID, postID uuid.UUID) (*models.FeedPost, error) {
	if err := s.likeRepo.AddLike(postID, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			return nil, apperr.NotFound("post not found")
		case errors.Is(err, repository.ErrAlreadyLiked):
			return nil, apperr.Conflict("you have already liked this post")
		default:
			logger.Log.Error("Failed to add like",
				zap.String("post_id", postID.String()),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return nil, apperr.Internal("failed to like post", err)
		}
	}

	count, err := s.likeRepo.CountLikes(postID)
	if err != nil {
		return nil, apperr.Internal("failed to count likes", err)
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apperr.Internal("failed to get post", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	logger.Log.Info("Post liked",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("likes_count", count),
	)

	return s.assembleFeedPost(post, count)
}

// UnlikePost removes userID's like on postID. The ledger returns the
// post-removal count, which is used as-is; nothing decrements it further.
func (s *PostService) UnlikePost(userID, postID uuid.UUID) (*models.FeedPost, error) {
	count, err := s.likeRepo.RemoveLike(postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPostNotFound):
			return nil, apperr.NotFound("post not found")
		case errors.Is(err, repository.ErrLikeNotFound):
			return nil, apperr.NotFound("like not found")
		default:
			logger.Log.Error("Failed to remove like",
				zap.String("post_id", postID.String()),
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			return nil, apperr.Internal("failed to unlike post", err)
		}
	}

	post, err := s.postRepo.GetPostByID(postID)
	if err != nil {
		return nil, apperr.Internal("failed to get post", err)
	}
	if post == nil {
		return nil, apperr.NotFound("post not found")
	}

	logger.Log.Info("Post unliked",
		zap.String("post_id", postID.String()),
		zap.String("user_id", userID.String()),
		zap.Int64("likes_count", count),
	)

	return s.assembleFeedPost(post, count)
}

// assembleFeedPost joins the owner's username onto the post. A post whose
// owner is gone keeps an empty username rather than failing.
func (s *PostService) assembleFeedPost(post *models.Post, likesCount int64) (*models.FeedPost, error) {
	username := ""
	owner, err := s.userRepo.GetUserByID(post.UserID)
	if err != nil {
		return nil, apperr.Internal("failed to get post owner", err)
	}
	if owner != nil {
		username = owner.Username
	}

	return &models.FeedPost{
		ID:         post.ID,
		Content:    post.Content,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
		UserID:     post.UserID,
		Username:   username,
		LikesCount: likesCount,
	}, nil
}
