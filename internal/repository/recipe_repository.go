package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// RecipeRepository defines owner-scoped recipe persistence operations.
// FindByOwner filters by both id and user, so a recipe owned by another user
// is indistinguishable from one that does not exist.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	FindByOwner(ctx context.Context, userID, id uint) (*model.Recipe, error)
	ListByOwner(ctx context.Context, userID uint) ([]model.Recipe, error)
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	Delete(ctx context.Context, recipe *model.Recipe) error
	// WithTransaction runs fn with transaction-bound repositories so an
	// aggregate write commits or rolls back as one unit.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, tags TagRepository, ingredients IngredientRepository) error) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	// Associations are attached explicitly via ReplaceTags/ReplaceIngredients
	// after the attribute resolver has scoped them to the owner.
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Create(recipe).Error
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients").Save(recipe).Error
}

func (r *recipeRepository) FindByOwner(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListByOwner returns the user's recipes, most recently created first.
func (r *recipeRepository) ListByOwner(ctx context.Context, userID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceTags swaps the recipe's tag set for exactly the given tags. An empty
// slice clears the set.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return err
	}
	recipe.Tags = tags
	return nil
}

// ReplaceIngredients swaps the recipe's ingredient set for exactly the given
// ingredients.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	if err := r.db.WithContext(ctx).Model(recipe).Association("Ingredients").Replace(&ingredients); err != nil {
		return err
	}
	recipe.Ingredients = ingredients
	return nil
}

// Delete removes the recipe and its associations. Tags and ingredients
// outlive the recipe.
func (r *recipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// WithTransaction executes fn within a database transaction.
func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, tags TagRepository, ingredients IngredientRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &recipeRepository{db: tx}, &tagRepository{db: tx}, &ingredientRepository{db: tx})
	})
}
