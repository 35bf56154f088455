package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/EasyPost_Go/internal/auth"
	"github.com/osse101/EasyPost_Go/internal/domain"
	"github.com/osse101/EasyPost_Go/internal/logger"
	"github.com/osse101/EasyPost_Go/internal/repository"
)

// Cache key kinds
const (
	cacheKindUsername = "username"
	cacheKindWhatsApp = "whatsapp"
)

// RegisterInput carries the fields needed to create a new user.
type RegisterInput struct {
	Username       string
	Email          string
	Password       string
	WhatsAppNumber string
	Niche          string
}

// UpdateInput carries optional profile changes; nil fields are left untouched.
type UpdateInput struct {
	Email          *string
	WhatsAppNumber *string
	Niche          *string
	Password       *string
}

// Service defines the interface for user operations
type Service interface {
	Register(ctx context.Context, input RegisterInput) (domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByWhatsAppNumber(ctx context.Context, number string) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, input UpdateInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type service struct {
	repo  repository.User
	cache *userCache
}

// NewService creates a user service backed by the given repository.
func NewService(repo repository.User) Service {
	return &service{
		repo:  repo,
		cache: newUserCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

// Register creates a new user with a hashed password.
func (s *service) Register(ctx context.Context, input RegisterInput) (domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterUserCalled, "username", input.Username)

	username := NormalizeUsername(input.Username)
	if err := validateRegistration(username, input.Email, input.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		Username:       username,
		Email:          strings.TrimSpace(input.Email),
		WhatsAppNumber: NormalizeWhatsAppNumber(input.WhatsAppNumber),
		Niche:          input.Niche,
		PasswordHash:   hash,
		IsActive:       true,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		if !errors.Is(err, domain.ErrUserAlreadyExists) {
			log.Error(LogErrFailedToCreateUser, "error", err, "username", username)
		}
		return domain.User{}, err
	}

	s.cacheUser(&user)

	log.Info(LogMsgUserRegistered, "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Authenticate verifies a username/password pair.
// Unknown usernames and wrong passwords both map to ErrInvalidCredentials.
func (s *service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *service) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername retrieves a user by normalized username, consulting the cache first.
func (s *service) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	normalized := NormalizeUsername(username)
	if cached, ok := s.cache.Get(cacheKindUsername, normalized); ok {
		return cached, nil
	}

	user, err := s.repo.GetUserByUsername(ctx, normalized)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// GetUserByWhatsAppNumber retrieves a user by phone number, consulting the cache
// first. Webhook message handling hits this on every inbound message.
func (s *service) GetUserByWhatsAppNumber(ctx context.Context, number string) (*domain.User, error) {
	normalized := NormalizeWhatsAppNumber(number)
	if cached, ok := s.cache.Get(cacheKindWhatsApp, normalized); ok {
		return cached, nil
	}

	user, err := s.repo.GetUserByWhatsAppNumber(ctx, normalized)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

// UpdateUser applies the non-nil fields of input to the stored user.
func (s *service) UpdateUser(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		log.Error(LogErrFailedToGetUser, "error", err, "user_id", id)
		return nil, err
	}

	// Invalidate under the pre-update keys; the update may change them.
	s.invalidateUser(user)

	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.WhatsAppNumber != nil {
		user.WhatsAppNumber = NormalizeWhatsAppNumber(*input.WhatsAppNumber)
	}
	if input.Niche != nil {
		user.Niche = *input.Niche
	}
	if input.Password != nil {
		if len(*input.Password) < MinPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(ctx, *user); err != nil {
		return nil, err
	}

	s.cacheUser(user)
	return user, nil
}

// DeleteUser removes a user; linked social accounts cascade at the database level.
func (s *service) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err == nil {
		s.invalidateUser(user)
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *service) cacheUser(user *domain.User) {
	s.cache.Set(cacheKindUsername, user.Username, user)
	if user.WhatsAppNumber != "" {
		s.cache.Set(cacheKindWhatsApp, user.WhatsAppNumber, user)
	}
}

func (s *service) invalidateUser(user *domain.User) {
	s.cache.Invalidate(cacheKindUsername, user.Username)
	if user.WhatsAppNumber != "" {
		s.cache.Invalidate(cacheKindWhatsApp, user.WhatsAppNumber)
	}
}

func validateRegistration(username, email, password string) error {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
	}
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, MinPasswordLength)
	}
	return nil
}
