package service

import (
	"context"
	"strings"
	"time"

	"smashboard/internal/models"
	"smashboard/internal/repository"
	"smashboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account lifecycle and the social graph.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type UpdateProfileInput struct {
	UserID uint
	Bio    string
	Avatar string
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo}
}

// Register validates the input, hashes the password, and creates the account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Username already taken")
	}
	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and stamps last_login. Invalid username and
// invalid password return the same error so the response does not leak
// which accounts exist.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	if !user.IsActive {
		return nil, models.NewUnauthorizedError("Account is deactivated")
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile returns the user with their published posts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, []*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, userID, false)
	if err != nil {
		return nil, nil, err
	}
	return user, posts, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	user.Bio = in.Bio
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Follow adds the follow edge. Following yourself is rejected; following
// someone twice is absorbed.
func (s *UserService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, followingID); err != nil {
		return err
	}
	_, err := s.userRepo.Follow(ctx, followerID, followingID)
	return err
}

func (s *UserService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return models.NewValidationError("You cannot unfollow yourself")
	}
	_, err := s.userRepo.Unfollow(ctx, followerID, followingID)
	return err
}

func (s *UserService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.userRepo.IsFollowing(ctx, followerID, followingID)
}

// Bookmarks lists the posts the user has bookmarked, for the profile page.
func (s *UserService) Bookmarks(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListBookmarkedBy(ctx, userID)
}
