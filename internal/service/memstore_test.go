package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wavegram/wavegram/internal/models"
)

// memStore is an in-memory substitute for the relational repositories.
// It implements UserStore, PostStore, CommentStore and CommentFinder and
// counts comment queries so tests can assert the bulk-fetch behavior.
type memStore struct {
	users    map[string]*models.User
	posts    map[string]*models.Post
	comments map[string]*models.Comment

	commentQueries int
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]*models.User),
		posts:    make(map[string]*models.Post),
		comments: make(map[string]*models.Comment),
	}
}

func (m *memStore) addUser(firstName, lastName, email, username string) *models.User {
	user := &models.User{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		Age:       30,
		Email:     email,
		Username:  username,
		Password:  "$2a$10$not-a-real-hash",
		Role:      models.RoleUser,
		Gender:    "Others",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addPost(user *models.User, title, content string, createdAt time.Time) *models.Post {
	post := &models.Post{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		UserID:    user.ID,
		User:      user,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	m.posts[post.ID] = post
	return post
}

func (m *memStore) addComment(post *models.Post, user *models.User, content string, createdAt time.Time) *models.Comment {
	comment := &models.Comment{
		ID:        uuid.New().String(),
		Content:   content,
		PostID:    post.ID,
		UserID:    user.ID,
		User:      user,
		Post:      post,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	m.comments[comment.ID] = comment
	return comment
}

// UserStore

func (m *memStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *memStore) GetByIDWithPosts(ctx context.Context, id string) (*models.User, error) {
	user := m.users[id]
	if user == nil {
		return nil, nil
	}
	copied := *user
	copied.Posts = nil
	for _, p := range m.posts {
		if p.UserID == id {
			copied.Posts = append(copied.Posts, *p)
		}
	}
	return &copied, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	user := m.users[id]
	if user == nil {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "first_name":
			user.FirstName = v.(string)
		case "last_name":
			user.LastName = v.(string)
		case "age":
			user.Age = v.(int)
		case "profile_picture":
			user.ProfilePicture = v.(string)
		}
	}
	user.UpdatedAt = time.Now()
	return nil
}

// postStore wraps memStore so PostStore and UserStore can both expose
// methods named GetByID / Create / UpdateFields
type postStore struct {
	*memStore
}

func (m *postStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post := m.posts[id]
	if post == nil {
		return nil, nil
	}
	copied := *post
	copied.User = m.users[post.UserID]
	return &copied, nil
}

func (m *postStore) GetOwner(ctx context.Context, id string) (*models.Post, error) {
	post := m.posts[id]
	if post == nil {
		return nil, nil
	}
	return &models.Post{ID: post.ID, UserID: post.UserID}, nil
}

func (m *postStore) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()
	m.posts[post.ID] = post
	return nil
}

func (m *postStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	post := m.posts[id]
	if post == nil {
		return nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			post.Title = v.(string)
		case "content":
			post.Content = v.(string)
		case "filenames":
			post.Filenames = v.(string)
		}
	}
	post.UpdatedAt = time.Now()
	return nil
}

func (m *postStore) matches(post *models.Post, search string) bool {
	if search == "" {
		return true
	}
	author := m.users[post.UserID]
	lower := strings.ToLower(search)
	for _, field := range []string{post.Content, post.Title, author.FirstName, author.LastName, author.Username} {
		if strings.Contains(strings.ToLower(field), lower) {
			return true
		}
	}
	return author.ID == search
}

func (m *postStore) CountFiltered(ctx context.Context, search string) (int64, error) {
	var count int64
	for _, p := range m.posts {
		if m.matches(p, search) {
			count++
		}
	}
	return count, nil
}

func (m *postStore) ListFiltered(ctx context.Context, search, sortColumn, sortDir string, offset, limit int) ([]models.Post, error) {
	var matched []models.Post
	for _, p := range m.posts {
		if m.matches(p, search) {
			copied := *p
			copied.User = m.users[p.UserID]
			matched = append(matched, copied)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		var less bool
		switch sortColumn {
		case "title":
			less = matched[i].Title < matched[j].Title
		case "updated_at":
			less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
		default:
			less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		if sortDir == "DESC" {
			return !less
		}
		return less
	})

	if offset >= len(matched) {
		return []models.Post{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

// commentStore wraps memStore for the CommentStore and CommentFinder
// interfaces
type commentStore struct {
	*memStore
}

func (m *commentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment := m.comments[id]
	if comment == nil {
		return nil, nil
	}
	copied := *comment
	copied.User = m.users[comment.UserID]
	return &copied, nil
}

func (m *commentStore) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	m.comments[comment.ID] = comment
	return nil
}

func (m *commentStore) UpdateContent(ctx context.Context, id, content string) error {
	comment := m.comments[id]
	if comment == nil {
		return fmt.Errorf("comment %s not found", id)
	}
	comment.Content = content
	comment.UpdatedAt = time.Now()
	return nil
}

func (m *commentStore) Delete(ctx context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *commentStore) ListByPostIDs(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	m.commentQueries++

	wanted := make(map[string]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	var result []models.Comment
	for _, c := range m.comments {
		if wanted[c.PostID] {
			copied := *c
			copied.User = m.users[c.UserID]
			result = append(result, copied)
		}
	}

	// Newest-first, matching the repository query
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
