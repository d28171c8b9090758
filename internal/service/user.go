package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wavegram/wavegram/internal/auth"
	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/pkg/logging"
)

// UserStore provides user persistence operations
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByIDWithPosts(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
}

// RegisterInput carries the fields for a new account
type RegisterInput struct {
	FirstName      string
	LastName       string
	Age            int
	Email          string
	Username       string
	Password       string
	Role           string
	Gender         string
	ProfilePicture string
}

// UpdateProfileInput carries the fields of a partial profile update.
// Nil fields are left unchanged.
type UpdateProfileInput struct {
	FirstName      *string
	LastName       *string
	Age            *int
	ProfilePicture *string
}

// TokenPair is an access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult carries the token pair and the authenticated user
type LoginResult struct {
	TokenPair
	User *models.User
}

// UserService handles registration, login, token refresh and profiles
type UserService struct {
	users     UserStore
	tokens    *auth.TokenService
	passwords *auth.PasswordHasher
	logger    *zap.Logger
}

// NewUserService creates a user service
func NewUserService(users UserStore, tokens *auth.TokenService, passwords *auth.PasswordHasher) *UserService {
	return &UserService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logging.WithComponent("user-service"),
	}
}

// Register creates a new account. Duplicate email or username fails
// with Conflict. The password is stored hashed, never in plaintext.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, NewConflict("User already exists")
	}

	existing, err = s.users.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, NewConflict("Username already taken")
	}

	hashed, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Age:            input.Age,
		Email:          input.Email,
		Username:       input.Username,
		Password:       hashed,
		Role:           role,
		Gender:         input.Gender,
		ProfilePicture: input.ProfilePicture,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown email and
// wrong password both fail with the same Unauthorized message.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NewUnauthorized("Invalid credentials")
	}
	if !s.passwords.Check(password, user.Password) {
		return nil, NewUnauthorized("Invalid credentials")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Refresh verifies a refresh token and issues a fresh token pair.
// The user must still exist; accounts deleted since issuance fail
// with NotFound.
func (s *UserService) Refresh(ctx context.Context, token string) (*TokenPair, error) {
	if token == "" {
		return nil, NewBadRequest("Refresh token is required")
	}

	claims, err := s.tokens.VerifyRefreshToken(token)
	if err != nil {
		switch err {
		case auth.ErrTokenExpired:
			return nil, NewUnauthorized("Refresh token has expired")
		default:
			return nil, NewUnauthorized("Invalid refresh token")
		}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NewNotFound("User not found")
	}

	return s.issuePair(user)
}

func (s *UserService) issuePair(user *models.User) (*TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// CurrentUser returns the caller's own profile with posts preloaded
func (s *UserService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByIDWithPosts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NewNotFound("User not found")
	}
	return user, nil
}

// GetUser returns a user profile by id
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NewNotFound("User not found")
	}
	return user, nil
}

// UpdateProfile applies a partial profile update and returns the
// updated user
func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, NewNotFound("User not found")
	}

	fields := make(map[string]interface{})
	if input.FirstName != nil {
		fields["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		fields["last_name"] = *input.LastName
	}
	if input.Age != nil {
		fields["age"] = *input.Age
	}
	if input.ProfilePicture != nil {
		fields["profile_picture"] = *input.ProfilePicture
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	return s.GetUser(ctx, id)
}
