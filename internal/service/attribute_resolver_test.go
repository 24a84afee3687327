package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"recipebox/internal/model"
)

func TestAttributeResolver_ResolveTags_PreservesOrder(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindOrCreate", mock.Anything, uint(1), "Football").Return(&model.Tag{ID: 1, Name: "Football", UserID: 1}, nil)
	repo.On("FindOrCreate", mock.Anything, uint(1), "Sports").Return(&model.Tag{ID: 2, Name: "Sports", UserID: 1}, nil)

	resolver := NewAttributeResolver()
	tags, err := resolver.ResolveTags(context.Background(), repo, 1, []AttributeInput{
		{Name: "Football"},
		{Name: "Sports"},
	})

	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Equal(t, "Football", tags[0].Name)
	assert.Equal(t, "Sports", tags[1].Name)
}

func TestAttributeResolver_ResolveTags_DuplicatesWithinCall(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindOrCreate", mock.Anything, uint(1), "Vegan").Return(&model.Tag{ID: 5, Name: "Vegan", UserID: 1}, nil).Once()

	resolver := NewAttributeResolver()
	tags, err := resolver.ResolveTags(context.Background(), repo, 1, []AttributeInput{
		{Name: "Vegan"},
		{Name: "Vegan"},
		{Name: "Vegan"},
	})

	// One repository hit; each input descriptor still yields an output entry
	// pointing at the same record.
	assert.NoError(t, err)
	assert.Len(t, tags, 3)
	for _, tag := range tags {
		assert.Equal(t, uint(5), tag.ID)
	}
	repo.AssertNumberOfCalls(t, "FindOrCreate", 1)
}

func TestAttributeResolver_ResolveTags_PropagatesError(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindOrCreate", mock.Anything, uint(1), "Broken").Return(nil, assert.AnError)

	resolver := NewAttributeResolver()
	tags, err := resolver.ResolveTags(context.Background(), repo, 1, []AttributeInput{{Name: "Broken"}})

	assert.Error(t, err)
	assert.Nil(t, tags)
}

func TestAttributeResolver_ResolveIngredients(t *testing.T) {
	repo := new(MockIngredientRepository)
	repo.On("FindOrCreate", mock.Anything, uint(4), "Salt").Return(&model.Ingredient{ID: 9, Name: "Salt", UserID: 4}, nil).Once()
	repo.On("FindOrCreate", mock.Anything, uint(4), "Pepper").Return(&model.Ingredient{ID: 10, Name: "Pepper", UserID: 4}, nil).Once()

	resolver := NewAttributeResolver()
	ingredients, err := resolver.ResolveIngredients(context.Background(), repo, 4, []AttributeInput{
		{Name: "Salt"},
		{Name: "Pepper"},
		{Name: "Salt"},
	})

	assert.NoError(t, err)
	assert.Len(t, ingredients, 3)
	assert.Equal(t, uint(9), ingredients[0].ID)
	assert.Equal(t, uint(10), ingredients[1].ID)
	assert.Equal(t, uint(9), ingredients[2].ID)
	repo.AssertNumberOfCalls(t, "FindOrCreate", 2)
}
