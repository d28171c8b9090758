package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wavegram/wavegram/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UserRepository provides user-related database operations
type UserRepository struct {
	*Repository
}

// NewUserRepository creates a new user repository
func NewUserRepository(repo *Repository) *UserRepository {
	return &UserRepository{Repository: repo}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDWithPosts retrieves a user with their posts preloaded
func (r *UserRepository) GetByIDWithPosts(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Posts").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateFields applies a partial update to a user
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// filtered builds the shared WHERE predicate for page and count queries.
// The search term matches post content, title and author name fields with
// a case-insensitive substring match, and independently matches the exact
// author id. Count and fetch must use the same predicate so pagination
// metadata stays consistent with page contents.
func (r *PostRepository) filtered(ctx context.Context, search string) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN users ON users.id = posts.user_id")

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"posts.content ILIKE ? OR posts.title ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.username ILIKE ? OR users.id::text = ?",
			pattern, pattern, pattern, pattern, pattern, search,
		)
	}

	return query
}

// CountFiltered counts posts matching the search predicate
func (r *PostRepository) CountFiltered(ctx context.Context, search string) (int64, error) {
	var count int64
	if err := r.filtered(ctx, search).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListFiltered retrieves one page of posts matching the search predicate,
// with authors preloaded. sortColumn and sortDir must already be validated
// against the sortable-column whitelist.
func (r *PostRepository) ListFiltered(ctx context.Context, search, sortColumn, sortDir string, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.filtered(ctx, search).
		Select("posts.*").
		Order("posts." + sortColumn + " " + sortDir).
		Offset(offset).
		Limit(limit).
		Preload("User").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID retrieves a post with its author preloaded
func (r *PostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetOwner retrieves only the id and owning-user id of a post.
// Used for ownership checks before mutation.
func (r *PostRepository) GetOwner(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Select("id", "user_id").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// UpdateFields applies a partial update to a post
func (r *PostRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// ListByPostIDs retrieves all comments for the given post ids with their
// authors preloaded, ordered newest-first. This is a constant number of
// queries regardless of how many posts are passed in.
func (r *CommentRepository) ListByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("created_at DESC").
		Preload("User").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByID retrieves a comment with its author preloaded
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// UpdateContent updates a comment's content
func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", id).
		Update("content", content).Error
}

// Delete removes a comment
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}
