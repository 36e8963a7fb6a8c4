// Package service provides business logic services for ShareIt.
package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"

	"github.com/openshare/shareit/internal/domain"
	"github.com/openshare/shareit/internal/repository"
)

// UserService handles user directory operations.
type UserService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// CreateUserInput contains the data needed to create a new user.
type CreateUserInput struct {
	Name  string
	Email string
}

// Create creates a new user account.
// Returns domain.ErrEmailTaken when the email is already in use.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ValidationError("name must not be blank")
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}

	user := domain.NewUser(input.Name, input.Email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("user created")

	return user, nil
}

// UpdateUserInput contains the partial fields for a user update.
// Nil or blank fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

// Update applies a partial update to an existing user.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = *input.Name
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
		user.Email = *input.Email
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user updated")
	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List returns all users. Order is unspecified.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

// Delete removes a user by ID. Deleting an absent user is not an error.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}

// validateEmail checks the email for blankness and shape.
func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return domain.ValidationError("email must not be blank")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.ValidationError("invalid email format: %s", email)
	}
	return nil
}
