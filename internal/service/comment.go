package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wavegram/wavegram/internal/cache"
	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/pkg/logging"
)

// CommentStore provides comment persistence operations
type CommentStore interface {
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

// CommentService handles comment CRUD with ownership checks
type CommentService struct {
	comments CommentStore
	posts    PostStore
	users    UserStore
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewCommentService creates a comment service. cache may be nil.
func NewCommentService(comments CommentStore, posts PostStore, users UserStore, redisCache *cache.Cache) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
		cache:    redisCache,
		logger:   logging.WithComponent("comment-service"),
	}
}

// CreateComment persists a new comment after verifying both the post and
// the user exist. The returned view embeds the post stripped of its own
// relations.
func (s *CommentService) CreateComment(ctx context.Context, content, postID, userID string) (*CommentView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if post == nil || user == nil {
		return nil, NewNotFound("Post or User not found")
	}

	comment := &models.Comment{
		Content: content,
		PostID:  post.ID,
		UserID:  user.ID,
		User:    user,
		Post:    post,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Info("comment created",
		zap.String("comment_id", comment.ID),
		zap.String("post_id", postID),
		zap.String("user_id", userID))

	s.invalidatePost(postID)

	view := NewCommentView(comment, true)
	return &view, nil
}

// UpdateComment updates a comment's content after an ownership check
func (s *CommentService) UpdateComment(ctx context.Context, id, content, userID string) (*CommentView, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment == nil {
		return nil, NewNotFound("Comment not found")
	}
	if comment.UserID != userID {
		return nil, NewForbidden("You are not authorized to update this comment")
	}

	if err := s.comments.UpdateContent(ctx, id, content); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	s.invalidatePost(comment.PostID)

	comment.Content = content
	view := NewCommentView(comment, false)
	return &view, nil
}

// DeleteComment removes a comment after an ownership check
func (s *CommentService) DeleteComment(ctx context.Context, id, userID string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment == nil {
		return NewNotFound("Comment not found")
	}
	if comment.UserID != userID {
		return NewForbidden("You are not authorized to delete this comment")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	s.invalidatePost(comment.PostID)
	return nil
}

// GetComment returns a single comment with its author, omitting
// sensitive user fields
func (s *CommentService) GetComment(ctx context.Context, id string) (*CommentView, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment == nil {
		return nil, NewNotFound("Comment not found")
	}

	view := NewCommentView(comment, false)
	return &view, nil
}

func (s *CommentService) invalidatePost(postID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(postCacheKey(postID)); err != nil && err != cache.ErrCacheDisabled {
		s.logger.Debug("failed to invalidate post cache", zap.Error(err))
	}
}
