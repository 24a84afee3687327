package service

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// IngredientService manages a user's ingredients outside of recipe writes.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	Rename(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	return s.repo.ListByOwner(ctx, userID, assignedOnly)
}

func (s *ingredientService) Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	return s.repo.FindOrCreate(ctx, userID, name)
}

func (s *ingredientService) Rename(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, mapIngredientError(err)
	}
	ingredient.Name = name
	if err := s.repo.Update(ctx, ingredient); err != nil {
		if errors.IsDuplicateEntry(err) {
			return nil, errors.ErrIngredientNameTaken
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	ingredient, err := s.repo.FindByOwner(ctx, userID, id)
	if err != nil {
		return mapIngredientError(err)
	}
	return s.repo.Delete(ctx, ingredient)
}

func mapIngredientError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrIngredientNotFound
	}
	return err
}
