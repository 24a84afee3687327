package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

func newRecipeServiceForTest() (RecipeService, *MockRecipeRepository, *MockTagRepository, *MockIngredientRepository, *MockMediaStore) {
	tags := new(MockTagRepository)
	ingredients := new(MockIngredientRepository)
	recipes := &MockRecipeRepository{txTags: tags, txIngredients: ingredients}
	media := new(MockMediaStore)
	svc := NewRecipeService(recipes, NewAttributeResolver(), media)
	return svc, recipes, tags, ingredients, media
}

func TestRecipeService_Create_WithExistingTag(t *testing.T) {
	svc, recipes, tags, _, _ := newRecipeServiceForTest()

	// "Indian" already exists for this user; "food" does not.
	recipes.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)
	tags.On("FindOrCreate", mock.Anything, uint(1), "Indian").Return(&model.Tag{ID: 11, Name: "Indian", UserID: 1}, nil)
	tags.On("FindOrCreate", mock.Anything, uint(1), "food").Return(&model.Tag{ID: 12, Name: "food", UserID: 1}, nil)
	recipes.On("ReplaceTags", mock.Anything, mock.AnythingOfType("*model.Recipe"), mock.AnythingOfType("[]model.Tag")).Return(nil)

	recipe, err := svc.Create(context.Background(), 1, CreateRecipeInput{
		Title:       "Indian Food",
		TimeMinutes: 30,
		Price:       decimal.RequireFromString("4.99"),
		Tags:        []AttributeInput{{Name: "Indian"}, {Name: "food"}},
	})

	assert.NoError(t, err)
	assert.Len(t, recipe.Tags, 2)
	assert.Equal(t, uint(11), recipe.Tags[0].ID)
	assert.Equal(t, "Indian", recipe.Tags[0].Name)
	assert.Equal(t, "food", recipe.Tags[1].Name)
	tags.AssertNumberOfCalls(t, "FindOrCreate", 2)
	recipes.AssertExpectations(t)
}

func TestRecipeService_Create_WithoutAttributes(t *testing.T) {
	svc, recipes, _, _, _ := newRecipeServiceForTest()

	recipes.On("Create", mock.Anything, mock.AnythingOfType("*model.Recipe")).Return(nil)

	recipe, err := svc.Create(context.Background(), 1, CreateRecipeInput{
		Title:       "Plain Toast",
		TimeMinutes: 5,
		Price:       decimal.RequireFromString("1.50"),
	})

	assert.NoError(t, err)
	assert.Empty(t, recipe.Tags)
	assert.Empty(t, recipe.Ingredients)
	recipes.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
	recipes.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_Update_EmptyTagListClearsSet(t *testing.T) {
	svc, recipes, _, _, _ := newRecipeServiceForTest()

	existing := &model.Recipe{
		ID:     3,
		UserID: 1,
		Title:  "Curry",
		Tags:   []model.Tag{{ID: 11, Name: "Indian", UserID: 1}},
	}
	recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
	recipes.On("Update", mock.Anything, existing).Return(nil)
	recipes.On("ReplaceTags", mock.Anything, existing, []model.Tag{}).Return(nil)

	empty := []AttributeInput{}
	recipe, err := svc.Update(context.Background(), 1, 3, UpdateRecipeInput{Tags: &empty})

	assert.NoError(t, err)
	assert.Empty(t, recipe.Tags)
	recipes.AssertExpectations(t)
}

func TestRecipeService_Update_OmittedTagsLeaveSetUntouched(t *testing.T) {
	svc, recipes, _, _, _ := newRecipeServiceForTest()

	existing := &model.Recipe{
		ID:     3,
		UserID: 1,
		Title:  "Curry",
		Tags:   []model.Tag{{ID: 11, Name: "Indian", UserID: 1}},
	}
	recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
	recipes.On("Update", mock.Anything, existing).Return(nil)

	title := "Paneer Curry"
	recipe, err := svc.Update(context.Background(), 1, 3, UpdateRecipeInput{Title: &title})

	assert.NoError(t, err)
	assert.Equal(t, "Paneer Curry", recipe.Title)
	assert.Len(t, recipe.Tags, 1)
	recipes.AssertNotCalled(t, "ReplaceTags", mock.Anything, mock.Anything, mock.Anything)
	recipes.AssertNotCalled(t, "ReplaceIngredients", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecipeService_Update_OtherUsersRecipeIsNotFound(t *testing.T) {
	svc, recipes, _, _, _ := newRecipeServiceForTest()

	// The repository scopes by owner, so user 2 looking up user 1's recipe
	// sees no row at all.
	recipes.On("FindByOwner", mock.Anything, uint(2), uint(3)).Return(nil, gorm.ErrRecordNotFound)

	title := "Hijacked"
	recipe, err := svc.Update(context.Background(), 2, 3, UpdateRecipeInput{Title: &title})

	assert.ErrorIs(t, err, errors.ErrRecipeNotFound)
	assert.Nil(t, recipe)
	recipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecipeService_Update_PartialScalars(t *testing.T) {
	svc, recipes, _, _, _ := newRecipeServiceForTest()

	existing := &model.Recipe{
		ID:          3,
		UserID:      1,
		Title:       "Curry",
		TimeMinutes: 30,
		Price:       decimal.RequireFromString("4.99"),
		Link:        "https://example.com/curry",
	}
	recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
	recipes.On("Update", mock.Anything, existing).Return(nil)

	minutes := 45
	recipe, err := svc.Update(context.Background(), 1, 3, UpdateRecipeInput{TimeMinutes: &minutes})

	assert.NoError(t, err)
	assert.Equal(t, 45, recipe.TimeMinutes)
	assert.Equal(t, "Curry", recipe.Title)
	assert.Equal(t, "https://example.com/curry", recipe.Link)
}

func TestRecipeService_Delete(t *testing.T) {
	t.Run("removes recipe and stored image", func(t *testing.T) {
		svc, recipes, _, _, media := newRecipeServiceForTest()

		existing := &model.Recipe{ID: 3, UserID: 1, Image: "abc.jpg"}
		recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
		recipes.On("Delete", mock.Anything, existing).Return(nil)
		media.On("Remove", "abc.jpg").Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), 1, 3))
		media.AssertExpectations(t)
	})

	t.Run("other user's recipe is not found", func(t *testing.T) {
		svc, recipes, _, _, media := newRecipeServiceForTest()

		recipes.On("FindByOwner", mock.Anything, uint(2), uint(3)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), 2, 3), errors.ErrRecipeNotFound)
		recipes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		media.AssertNotCalled(t, "Remove", mock.Anything)
	})
}

func TestRecipeService_UploadImage(t *testing.T) {
	t.Run("stores image and replaces previous file", func(t *testing.T) {
		svc, recipes, _, _, media := newRecipeServiceForTest()

		existing := &model.Recipe{ID: 3, UserID: 1, Image: "old.png"}
		recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
		media.On("Save", []byte("image-bytes")).Return("new.png", nil)
		recipes.On("Update", mock.Anything, existing).Return(nil)
		media.On("Remove", "old.png").Return(nil)

		recipe, err := svc.UploadImage(context.Background(), 1, 3, []byte("image-bytes"))
		assert.NoError(t, err)
		assert.Equal(t, "new.png", recipe.Image)
		media.AssertExpectations(t)
	})

	t.Run("undecodable payload is rejected", func(t *testing.T) {
		svc, recipes, _, _, media := newRecipeServiceForTest()

		existing := &model.Recipe{ID: 3, UserID: 1}
		recipes.On("FindByOwner", mock.Anything, uint(1), uint(3)).Return(existing, nil)
		media.On("Save", []byte("not-an-image")).Return("", errors.ErrInvalidImage)

		_, err := svc.UploadImage(context.Background(), 1, 3, []byte("not-an-image"))
		assert.ErrorIs(t, err, errors.ErrInvalidImage)
		recipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
