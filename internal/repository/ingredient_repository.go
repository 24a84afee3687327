package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// IngredientRepository defines owner-scoped ingredient persistence operations.
type IngredientRepository interface {
	FindOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	FindByOwner(ctx context.Context, userID, id uint) (*model.Ingredient, error)
	ListByOwner(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error)
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, ingredient *model.Ingredient) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// FindOrCreate mirrors TagRepository.FindOrCreate: exact-match lookup scoped
// to the user, create on miss, re-read the winner on a unique-index conflict.
func (r *ingredientRepository) FindOrCreate(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ingredient = model.Ingredient{UserID: userID, Name: name}
	if createErr := r.db.WithContext(ctx).Create(&ingredient).Error; createErr != nil {
		var existing model.Ingredient
		if findErr := r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&existing).Error; findErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByOwner(ctx context.Context, userID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) ListByOwner(ctx context.Context, userID uint, assignedOnly bool) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	q := r.db.WithContext(ctx).Where("ingredients.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Distinct("ingredients.*")
	}
	if err := q.Order("ingredients.name DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete removes the ingredient and its recipe associations.
func (r *ingredientRepository) Delete(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}
