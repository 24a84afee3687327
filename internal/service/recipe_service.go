package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/storage"
)

// CreateRecipeInput carries the fields for a new recipe. Nil tag/ingredient
// slices mean the field was absent; the recipe starts with empty sets either
// way.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Link        string
	Description string
	Tags        []AttributeInput
	Ingredients []AttributeInput
}

// UpdateRecipeInput applies a partial update: only non-nil fields are
// written. A non-nil Tags/Ingredients pointer replaces the whole set, even
// when it points at an empty slice; nil leaves the set untouched. There is
// deliberately no owner field here.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Description *string
	Tags        *[]AttributeInput
	Ingredients *[]AttributeInput
}

// RecipeService orchestrates recipe aggregate writes: scalar fields plus tag
// and ingredient sets as one atomic unit.
type RecipeService interface {
	Create(ctx context.Context, userID uint, input CreateRecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, input UpdateRecipeInput) (*model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	List(ctx context.Context, userID uint) ([]model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
	UploadImage(ctx context.Context, userID, id uint, payload []byte) (*model.Recipe, error)
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	resolver   AttributeResolver
	media      storage.MediaStore
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, resolver AttributeResolver, media storage.MediaStore) RecipeService {
	return &recipeService{
		recipeRepo: recipeRepo,
		resolver:   resolver,
		media:      media,
	}
}

// Create persists a recipe and its resolved tag/ingredient sets in one
// transaction.
func (s *recipeService) Create(ctx context.Context, userID uint, input CreateRecipeInput) (*model.Recipe, error) {
	var created *model.Recipe
	err := s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) error {
		recipe := &model.Recipe{
			UserID:      userID,
			Title:       input.Title,
			TimeMinutes: input.TimeMinutes,
			Price:       input.Price,
			Link:        input.Link,
			Description: input.Description,
			Tags:        []model.Tag{},
			Ingredients: []model.Ingredient{},
		}
		if err := recipes.Create(ctx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}

		if len(input.Tags) > 0 {
			resolved, err := s.resolver.ResolveTags(ctx, tags, userID, input.Tags)
			if err != nil {
				return fmt.Errorf("resolve tags: %w", err)
			}
			if err := recipes.ReplaceTags(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("attach tags: %w", err)
			}
		}
		if len(input.Ingredients) > 0 {
			resolved, err := s.resolver.ResolveIngredients(ctx, ingredients, userID, input.Ingredients)
			if err != nil {
				return fmt.Errorf("resolve ingredients: %w", err)
			}
			if err := recipes.ReplaceIngredients(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("attach ingredients: %w", err)
			}
		}

		created = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies scalar changes and, when the corresponding descriptor set is
// present, fully replaces tag/ingredient associations. Everything runs in one
// transaction against the owner's recipe.
func (s *recipeService) Update(ctx context.Context, userID, id uint, input UpdateRecipeInput) (*model.Recipe, error) {
	var updated *model.Recipe
	err := s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) error {
		recipe, err := recipes.FindByOwner(ctx, userID, id)
		if err != nil {
			return mapRecipeError(err)
		}

		if input.Title != nil {
			recipe.Title = *input.Title
		}
		if input.TimeMinutes != nil {
			recipe.TimeMinutes = *input.TimeMinutes
		}
		if input.Price != nil {
			recipe.Price = *input.Price
		}
		if input.Link != nil {
			recipe.Link = *input.Link
		}
		if input.Description != nil {
			recipe.Description = *input.Description
		}
		if err := recipes.Update(ctx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		if input.Tags != nil {
			resolved, err := s.resolver.ResolveTags(ctx, tags, userID, *input.Tags)
			if err != nil {
				return fmt.Errorf("resolve tags: %w", err)
			}
			if err := recipes.ReplaceTags(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
		}
		if input.Ingredients != nil {
			resolved, err := s.resolver.ResolveIngredients(ctx, ingredients, userID, *input.Ingredients)
			if err != nil {
				return fmt.Errorf("resolve ingredients: %w", err)
			}
			if err := recipes.ReplaceIngredients(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
		}

		updated = recipe
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, mapRecipeError(err)
	}
	return recipe, nil
}

func (s *recipeService) List(ctx context.Context, userID uint) ([]model.Recipe, error) {
	return s.recipeRepo.ListByOwner(ctx, userID)
}

// Delete removes the recipe and its associations, then its stored image. Tags
// and ingredients survive.
func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	recipe, err := s.recipeRepo.FindByOwner(ctx, userID, id)
	if err != nil {
		return mapRecipeError(err)
	}
	if err := s.recipeRepo.Delete(ctx, recipe); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if recipe.Image != "" {
		// Best effort, the row is already gone.
		_ = s.media.Remove(recipe.Image)
	}
	return nil
}

// UploadImage validates the payload decodes as an image, stores it, and
// replaces any previous image file.
func (s *recipeService) UploadImage(ctx context.Context, userID, id uint, payload []byte) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, mapRecipeError(err)
	}

	name, err := s.media.Save(payload)
	if err != nil {
		return nil, err
	}

	previous := recipe.Image
	recipe.Image = name
	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		_ = s.media.Remove(name)
		return nil, fmt.Errorf("update recipe image: %w", err)
	}
	if previous != "" {
		_ = s.media.Remove(previous)
	}
	return recipe, nil
}

func mapRecipeError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrRecipeNotFound
	}
	return err
}
