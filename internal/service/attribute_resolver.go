package service

import (
	"context"

	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// AttributeInput is a caller-supplied {name} descriptor for a tag or
// ingredient.
type AttributeInput struct {
	Name string `json:"name" validate:"required"`
}

// AttributeResolver resolves descriptors to existing or newly created records
// scoped to the acting user. The owner is always the acting user, never a
// caller-supplied one, so cross-user references cannot be constructed.
//
// Results come back in input order, one per descriptor. Duplicate names within
// a call resolve to the same record. Repositories are passed per call so the
// resolver can run on transaction-bound repositories during aggregate writes.
type AttributeResolver interface {
	ResolveTags(ctx context.Context, repo repository.TagRepository, userID uint, descriptors []AttributeInput) ([]model.Tag, error)
	ResolveIngredients(ctx context.Context, repo repository.IngredientRepository, userID uint, descriptors []AttributeInput) ([]model.Ingredient, error)
}

type attributeResolver struct{}

// NewAttributeResolver creates an attribute resolver.
func NewAttributeResolver() AttributeResolver {
	return &attributeResolver{}
}

func (r *attributeResolver) ResolveTags(ctx context.Context, repo repository.TagRepository, userID uint, descriptors []AttributeInput) ([]model.Tag, error) {
	resolved := make([]model.Tag, 0, len(descriptors))
	seen := make(map[string]model.Tag, len(descriptors))
	for _, d := range descriptors {
		if tag, ok := seen[d.Name]; ok {
			resolved = append(resolved, tag)
			continue
		}
		tag, err := repo.FindOrCreate(ctx, userID, d.Name)
		if err != nil {
			return nil, err
		}
		seen[d.Name] = *tag
		resolved = append(resolved, *tag)
	}
	return resolved, nil
}

func (r *attributeResolver) ResolveIngredients(ctx context.Context, repo repository.IngredientRepository, userID uint, descriptors []AttributeInput) ([]model.Ingredient, error) {
	resolved := make([]model.Ingredient, 0, len(descriptors))
	seen := make(map[string]model.Ingredient, len(descriptors))
	for _, d := range descriptors {
		if ingredient, ok := seen[d.Name]; ok {
			resolved = append(resolved, ingredient)
			continue
		}
		ingredient, err := repo.FindOrCreate(ctx, userID, d.Name)
		if err != nil {
			return nil, err
		}
		seen[d.Name] = *ingredient
		resolved = append(resolved, *ingredient)
	}
	return resolved, nil
}
