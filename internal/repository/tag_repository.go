package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// TagRepository defines owner-scoped tag persistence operations. Every query
// takes the owning user explicitly so scoping cannot be omitted.
type TagRepository interface {
	FindOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error)
	FindByOwner(ctx context.Context, userID, id uint) (*model.Tag, error)
	ListByOwner(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, tag *model.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// FindOrCreate returns the tag with this exact name for the user, creating it
// when absent. Name matching is case-sensitive. A concurrent creator winning
// the race trips the (user_id, name) unique index; the winner is re-read.
func (r *tagRepository) FindOrCreate(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = model.Tag{UserID: userID, Name: name}
	if createErr := r.db.WithContext(ctx).Create(&tag).Error; createErr != nil {
		var existing model.Tag
		if findErr := r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&existing).Error; findErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &tag, nil
}

func (r *tagRepository) FindByOwner(ctx context.Context, userID, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListByOwner returns the user's tags ordered by name descending. With
// assignedOnly, only tags attached to at least one of the user's recipes are
// returned, each exactly once.
func (r *tagRepository) ListByOwner(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	var tags []model.Tag
	q := r.db.WithContext(ctx).Where("tags.user_id = ?", userID)
	if assignedOnly {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Distinct("tags.*")
	}
	if err := q.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes the tag and its recipe associations. Recipes themselves are
// untouched.
func (r *tagRepository) Delete(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
