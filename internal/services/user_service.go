package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/isdelr/contact-book-be/internal/apierror"
	"github.com/isdelr/contact-book-be/internal/database"
	"github.com/isdelr/contact-book-be/internal/models"
	"github.com/isdelr/contact-book-be/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgUsernameTaken  = "Username already exists"
	msgBadCredentials = "Username or password wrong"
	msgUserNotFound   = "User not found"
	msgUnauthorized   = "Unauthorized"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, req models.RegisterUserRequest) (models.UserResponse, error)
	Login(ctx context.Context, req models.LoginUserRequest) (models.TokenResponse, error)
	Get(ctx context.Context, username string) (models.UserResponse, error)
	Update(ctx context.Context, req models.UpdateUserRequest) (models.UserResponse, error)
	Logout(ctx context.Context, username string) (models.UserResponse, error)
	GetByToken(ctx context.Context, token string) (models.User, error)
}

// UserService provides business logic for accounts and sessions.
type UserService struct {
	db         *gorm.DB
	events     EventServiceProvider
	bcryptCost int
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB, events EventServiceProvider, bcryptCost int) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{db: db, events: events, bcryptCost: bcryptCost}
}

// Register creates a new account. The username's primary key constraint is
// what rejects duplicates, so concurrent registrations cannot both succeed.
func (s *UserService) Register(ctx context.Context, req models.RegisterUserRequest) (models.UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.UserResponse{}, err
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return models.UserResponse{}, err
	}

	user := models.User{
		Username: req.Username,
		Name:     req.Name,
		Password: hashed,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.UserResponse{}, apierror.Conflict(msgUsernameTaken)
		}
		return models.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.events.Record(ctx, user.Username, models.EventUserRegister, "Account created")
	return user.ToResponse(), nil
}

// Login verifies credentials and issues a fresh session token. Unknown
// usernames and wrong passwords fail identically.
func (s *UserService) Login(ctx context.Context, req models.LoginUserRequest) (models.TokenResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.TokenResponse{}, err
	}

	var user models.User
	err := s.db.WithContext(ctx).
		Select("username", "password").
		Where("username = ?", req.Username).
		First(&user).Error
	if err != nil {
		if database.IsRecordNotFound(err) {
			return models.TokenResponse{}, apierror.Unauthorized(msgBadCredentials)
		}
		return models.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.TokenResponse{}, apierror.Unauthorized(msgBadCredentials)
	}

	token := uuid.NewString()
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", user.Username).
		Update("token", token)
	if res.Error != nil {
		return models.TokenResponse{}, fmt.Errorf("failed to store session token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.TokenResponse{}, apierror.Unauthorized(msgBadCredentials)
	}

	s.events.Record(ctx, user.Username, models.EventUserLogin, "Logged in")
	return models.TokenResponse{Token: token}, nil
}

// Get returns the public profile of a user.
func (s *UserService) Get(ctx context.Context, username string) (models.UserResponse, error) {
	username, err := validation.Username(username)
	if err != nil {
		return models.UserResponse{}, err
	}

	user, err := s.find(ctx, username)
	if err != nil {
		return models.UserResponse{}, err
	}
	return user.ToResponse(), nil
}

// Update applies only the fields present in req. A new password is re-hashed.
func (s *UserService) Update(ctx context.Context, req models.UpdateUserRequest) (models.UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return models.UserResponse{}, err
	}

	updates := map[string]interface{}{}
	if name, ok := req.Name.Get(); ok {
		updates["name"] = name
	}
	if password, ok := req.Password.Get(); ok {
		hashed, err := s.hash(password)
		if err != nil {
			return models.UserResponse{}, err
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).
			Model(&models.User{}).
			Where("username = ?", req.Username).
			Updates(updates)
		if res.Error != nil {
			return models.UserResponse{}, fmt.Errorf("failed to update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.UserResponse{}, apierror.NotFound(msgUserNotFound)
		}
	}

	user, err := s.find(ctx, req.Username)
	if err != nil {
		return models.UserResponse{}, err
	}

	if len(updates) > 0 {
		s.events.Record(ctx, user.Username, models.EventUserUpdate, "Profile updated")
	}
	return user.ToResponse(), nil
}

// Logout clears the user's session token.
func (s *UserService) Logout(ctx context.Context, username string) (models.UserResponse, error) {
	username, err := validation.Username(username)
	if err != nil {
		return models.UserResponse{}, err
	}

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("token", gorm.Expr("NULL"))
	if res.Error != nil {
		return models.UserResponse{}, fmt.Errorf("failed to clear session token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.UserResponse{}, apierror.NotFound(msgUserNotFound)
	}

	s.events.Record(ctx, username, models.EventUserLogout, "Logged out")
	return models.UserResponse{Username: username}, nil
}

// GetByToken resolves a session token to its user.
func (s *UserService) GetByToken(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, apierror.Unauthorized(msgUnauthorized)
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&user).Error
	if err != nil {
		if database.IsRecordNotFound(err) {
			return models.User{}, apierror.Unauthorized(msgUnauthorized)
		}
		return models.User{}, fmt.Errorf("failed to resolve session token: %w", err)
	}
	return user, nil
}

func (s *UserService) find(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if database.IsRecordNotFound(err) {
			return models.User{}, apierror.NotFound(msgUserNotFound)
		}
		return models.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
