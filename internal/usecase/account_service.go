package usecase

import (
	"context"
	"fmt"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/utils"
)

// RegisterInput carries the signup form
type RegisterInput struct {
	Name                   string
	Email                  string
	PhoneNumber            string
	Password               string
	NotificationPreference string
}

// AccountService handles signup, login and preference changes
type AccountService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	logger     logger.Logger
}

// NewAccountService creates a new account service
func NewAccountService(userRepo repository.UserRepository, bcryptCost int, logger logger.Logger) *AccountService {
	return &AccountService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a user with a hashed password.
// Unknown notification preferences are stored as unset.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:                   name,
		Email:                  email,
		PhoneNumber:            strings.TrimSpace(in.PhoneNumber),
		PasswordHash:           hash,
		NotificationPreference: entity.ParsePreference(in.NotificationPreference),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", "email", user.Email, "preference", user.NotificationPreference.String())
	return user, nil
}

// Login checks the password of an existing user
func (s *AccountService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdatePreference stores the normalized preference and returns it
func (s *AccountService) UpdatePreference(ctx context.Context, email, preference string) (entity.NotificationPreference, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return entity.PreferenceUnset, fmt.Errorf("%w: email is required", ErrValidation)
	}

	pref := entity.ParsePreference(preference)
	if err := s.userRepo.UpdatePreference(ctx, email, pref); err != nil {
		return entity.PreferenceUnset, err
	}

	s.logger.Info("Notification preference updated", "email", email, "preference", pref.String())
	return pref, nil
}
