package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/wavegram/wavegram/internal/cache"
	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/pkg/logging"
)

// Cache TTLs for projected post views. Writes to a post or its comments
// delete the single-post key; list pages simply age out.
const (
	postListCacheTTL = 30 * time.Second
	postViewCacheTTL = time.Minute
)

// PostStore provides post persistence operations
type PostStore interface {
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetOwner(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	CountFiltered(ctx context.Context, search string) (int64, error)
	ListFiltered(ctx context.Context, search, sortColumn, sortDir string, offset, limit int) ([]models.Post, error)
}

// CreatePostInput carries the fields for a new post
type CreatePostInput struct {
	Title     string
	Content   string
	Filenames []string
	UserID    string
}

// EditPostInput carries the fields of a partial post update.
// Nil fields are left unchanged.
type EditPostInput struct {
	Title     *string
	Content   *string
	Filenames []string
}

// PostService validates query options, builds filtered page queries and
// delegates view assembly to the projection builder
type PostService struct {
	posts       PostStore
	projections *ProjectionBuilder
	cache       *cache.Cache
	logger      *zap.Logger
}

// NewPostService creates a post service. cache may be nil to disable
// read-model caching.
func NewPostService(posts PostStore, projections *ProjectionBuilder, redisCache *cache.Cache) *PostService {
	return &PostService{
		posts:       posts,
		projections: projections,
		cache:       redisCache,
		logger:      logging.WithComponent("post-service"),
	}
}

// GetAllPosts returns one page of projected post views with pagination
// metadata. The count query and the page query share the same filter
// predicate so the metadata always agrees with the page contents.
func (s *PostService) GetAllPosts(ctx context.Context, opts PostQueryOptions) (*PostPage, error) {
	cacheKey := cache.HashKey(
		"posts",
		fmt.Sprintf("page=%d", opts.Page),
		fmt.Sprintf("limit=%d", opts.Limit),
		opts.SortBy,
		opts.SortOrder,
		opts.Search,
	)
	if s.cache != nil {
		var cached PostPage
		if err := s.cache.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	totalItems, err := s.posts.CountFiltered(ctx, opts.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	totalPages := int((totalItems + int64(opts.Limit) - 1) / int64(opts.Limit))

	offset := (opts.Page - 1) * opts.Limit
	posts, err := s.posts.ListFiltered(ctx, opts.Search, opts.SortColumn(), opts.SortOrder, offset, opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}

	views, err := s.projections.BuildPostViews(ctx, posts)
	if err != nil {
		return nil, err
	}

	page := &PostPage{
		Posts: views,
		Pagination: Pagination{
			TotalItems:      totalItems,
			TotalPages:      totalPages,
			CurrentPage:     opts.Page,
			HasNextPage:     opts.Page < totalPages,
			HasPreviousPage: opts.Page > 1,
		},
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, page, postListCacheTTL); err != nil {
			s.logger.Debug("failed to cache post page", zap.Error(err))
		}
	}

	return page, nil
}

// GetPost returns the projected view for a single post, or NotFound
func (s *PostService) GetPost(ctx context.Context, id string) (*PostView, error) {
	cacheKey := postCacheKey(id)
	if s.cache != nil {
		var cached PostView
		if err := s.cache.GetJSON(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post: %w", err)
	}
	if post == nil {
		return nil, NewNotFound("Post not found")
	}

	views, err := s.projections.BuildPostViews(ctx, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	view := &views[0]

	if s.cache != nil {
		if err := s.cache.SetJSON(cacheKey, view, postViewCacheTTL); err != nil {
			s.logger.Debug("failed to cache post view", zap.Error(err))
		}
	}

	return view, nil
}

// CreatePost persists a new post and returns its projected view
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*PostView, error) {
	post := &models.Post{
		Title:   input.Title,
		Content: input.Content,
		UserID:  input.UserID,
	}
	post.SetImages(input.Filenames)

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("user_id", input.UserID))

	return s.GetPost(ctx, post.ID)
}

// EditPost applies a partial update after an ownership check. Only the
// post's id and owning-user id are fetched for the check. Concurrent
// edits are last-write-wins at the update statement level.
func (s *PostService) EditPost(ctx context.Context, id string, input EditPostInput, ownerID string) (*PostView, error) {
	owner, err := s.posts.GetOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post owner: %w", err)
	}
	if owner == nil {
		return nil, NewNotFound("Post not found")
	}
	if owner.UserID != ownerID {
		return nil, NewForbidden("You are not authorized to update this post")
	}

	fields := make(map[string]interface{})
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Content != nil {
		fields["content"] = *input.Content
	}
	if input.Filenames != nil {
		fields["filenames"] = strings.Join(input.Filenames, ",")
	}

	if len(fields) > 0 {
		if err := s.posts.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update post: %w", err)
		}
	}

	s.invalidatePost(id)
	return s.GetPost(ctx, id)
}

// invalidatePost drops the cached single-post view after a write
func (s *PostService) invalidatePost(id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(postCacheKey(id)); err != nil && err != cache.ErrCacheDisabled {
		s.logger.Debug("failed to invalidate post cache", zap.Error(err))
	}
}

func postCacheKey(id string) string {
	return cache.HashKey("post", id)
}
