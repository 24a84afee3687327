package service

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// TagService manages a user's tags outside of recipe writes.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
	Rename(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]model.Tag, error) {
	return s.repo.ListByOwner(ctx, userID, assignedOnly)
}

// Create is idempotent for an existing name: it returns the already-owned tag
// rather than failing, matching the lazy creation on recipe writes.
func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	return s.repo.FindOrCreate(ctx, userID, name)
}

func (s *tagService) Rename(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.repo.FindByOwner(ctx, userID, id)
	if err != nil {
		return nil, mapTagError(err)
	}
	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		// The (user_id, name) unique index rejects a collision with another
		// of the user's tags.
		if errors.IsDuplicateEntry(err) {
			return nil, errors.ErrTagNameTaken
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	tag, err := s.repo.FindByOwner(ctx, userID, id)
	if err != nil {
		return mapTagError(err)
	}
	return s.repo.Delete(ctx, tag)
}

func mapTagError(err error) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.ErrTagNotFound
	}
	return err
}
