package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// UpdateProfileInput applies a partial profile update. Only non-nil fields
// are written.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService manages the authenticated user's own profile. The user is
// always resolved from the token identity, never from a supplied id.
type UserService interface {
	Get(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Get(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, errors.ErrEmailRequired
		}
		email := normalizeEmail(*input.Email)
		if email != user.Email {
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing != nil {
				return nil, errors.ErrEmailTaken
			} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
