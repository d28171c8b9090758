package service

import (
	"context"
	"fmt"

	"github.com/wavegram/wavegram/internal/models"
)

// latestCommentsCap bounds the comment preview attached to each post view
const latestCommentsCap = 3

// CommentFinder loads comments for a set of posts in bulk
type CommentFinder interface {
	// ListByPostIDs returns all comments for the given post ids with
	// authors populated, ordered newest-first.
	ListByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error)
}

// ProjectionBuilder assembles denormalized post views from raw post rows.
// Comment data is fetched with a constant number of queries regardless of
// how many posts are projected.
type ProjectionBuilder struct {
	comments CommentFinder
}

// NewProjectionBuilder creates a projection builder
func NewProjectionBuilder(comments CommentFinder) *ProjectionBuilder {
	return &ProjectionBuilder{comments: comments}
}

// BuildPostViews produces one view per input post, order-preserving.
// Each input post must have its author populated.
func (b *ProjectionBuilder) BuildPostViews(ctx context.Context, posts []models.Post) ([]PostView, error) {
	if len(posts) == 0 {
		return []PostView{}, nil
	}

	// Collect distinct post ids, preserving input order
	seen := make(map[string]bool, len(posts))
	ids := make([]string, 0, len(posts))
	for i := range posts {
		if !seen[posts[i].ID] {
			seen[posts[i].ID] = true
			ids = append(ids, posts[i].ID)
		}
	}

	// One bulk fetch for all posts on the page
	comments, err := b.comments.ListByPostIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	// Group by post id; input is already ordered newest-first so each
	// group keeps that order
	grouped := make(map[string][]models.Comment, len(ids))
	for i := range comments {
		grouped[comments[i].PostID] = append(grouped[comments[i].PostID], comments[i])
	}

	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, b.buildView(&posts[i], grouped[posts[i].ID]))
	}
	return views, nil
}

// buildView assembles the view for a single post from its full comment
// group. The comment count is taken from the group size before the
// preview cap is applied; the two must never be conflated.
func (b *ProjectionBuilder) buildView(post *models.Post, comments []models.Comment) PostView {
	commentCount := len(comments)

	preview := comments
	if len(preview) > latestCommentsCap {
		preview = preview[:latestCommentsCap]
	}

	latest := make([]CommentSummary, 0, len(preview))
	for i := range preview {
		latest = append(latest, CommentSummary{
			ID:        preview[i].ID,
			Content:   preview[i].Content,
			CreatedAt: preview[i].CreatedAt,
			UpdatedAt: preview[i].UpdatedAt,
			User:      NewAuthorView(preview[i].User),
		})
	}

	return PostView{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Images:    post.Images(),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
		User:      NewAuthorView(post.User),
		Stats: PostStats{
			CommentCount: commentCount,
			HasComments:  commentCount > 0,
		},
		LatestComments: latest,
	}
}
