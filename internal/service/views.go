package service

import (
	"time"

	"github.com/wavegram/wavegram/internal/models"
)

// AuthorView is the wire-safe summary of a post or comment author.
// Sensitive fields (password, email, role) are never included.
type AuthorView struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	FullName       string `json:"fullName"`
}

// NewAuthorView maps a user to its wire-safe author summary
func NewAuthorView(u *models.User) AuthorView {
	if u == nil {
		return AuthorView{}
	}
	return AuthorView{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		FullName:       u.FullName(),
	}
}

// CommentSummary is a comment entry inside a projected post view
type CommentSummary struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      AuthorView `json:"user"`
}

// PostStats carries derived comment figures for a post.
// CommentCount is the true total for the post, computed independently
// of the capped latestComments list.
type PostStats struct {
	CommentCount int  `json:"commentCount"`
	HasComments  bool `json:"hasComments"`
}

// PostView is the denormalized read model for a single post
type PostView struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Content        string           `json:"content"`
	Images         []string         `json:"images"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	User           AuthorView       `json:"user"`
	Stats          PostStats        `json:"stats"`
	LatestComments []CommentSummary `json:"latestComments"`
}

// Pagination is page metadata for list responses
type Pagination struct {
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// PostPage is one page of projected post views with its pagination metadata
type PostPage struct {
	Posts      []PostView `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// PostRef is a back-reference-free post summary embedded in comment views
type PostRef struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// CommentView is the wire-safe view of a single comment
type CommentView struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	User      AuthorView `json:"user"`
	Post      *PostRef   `json:"post,omitempty"`
}

// NewCommentView maps a comment to its wire-safe view. The embedded post
// reference, when present, is stripped of its own user and comments to
// avoid cycles.
func NewCommentView(c *models.Comment, includePost bool) CommentView {
	view := CommentView{
		ID:        c.ID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		User:      NewAuthorView(c.User),
	}
	if includePost && c.Post != nil {
		view.Post = &PostRef{
			ID:      c.Post.ID,
			Title:   c.Post.Title,
			Content: c.Post.Content,
			Images:  c.Post.Images(),
		}
	}
	return view
}
