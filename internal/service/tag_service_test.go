package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

func TestTagService_List(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("ListByOwner", mock.Anything, uint(1), true).Return([]model.Tag{
		{ID: 2, Name: "Vegan", UserID: 1},
		{ID: 1, Name: "Dessert", UserID: 1},
	}, nil)

	svc := NewTagService(repo)
	tags, err := svc.List(context.Background(), 1, true)

	assert.NoError(t, err)
	assert.Len(t, tags, 2)
	repo.AssertExpectations(t)
}

func TestTagService_Create_ReusesExistingName(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindOrCreate", mock.Anything, uint(1), "Vegan").Return(&model.Tag{ID: 2, Name: "Vegan", UserID: 1}, nil)

	svc := NewTagService(repo)
	tag, err := svc.Create(context.Background(), 1, "Vegan")

	assert.NoError(t, err)
	assert.Equal(t, uint(2), tag.ID)
}

func TestTagService_Rename(t *testing.T) {
	t.Run("owned tag", func(t *testing.T) {
		repo := new(MockTagRepository)
		repo.On("FindByOwner", mock.Anything, uint(1), uint(2)).Return(&model.Tag{ID: 2, Name: "Vegan", UserID: 1}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(nil)

		svc := NewTagService(repo)
		tag, err := svc.Rename(context.Background(), 1, 2, "Plant Based")

		assert.NoError(t, err)
		assert.Equal(t, "Plant Based", tag.Name)
	})

	t.Run("other user's tag is not found", func(t *testing.T) {
		repo := new(MockTagRepository)
		repo.On("FindByOwner", mock.Anything, uint(9), uint(2)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTagService(repo)
		_, err := svc.Rename(context.Background(), 9, 2, "Stolen")

		assert.ErrorIs(t, err, errors.ErrTagNotFound)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("renaming to an already-owned name is a validation failure", func(t *testing.T) {
		repo := new(MockTagRepository)
		repo.On("FindByOwner", mock.Anything, uint(1), uint(2)).Return(&model.Tag{ID: 2, Name: "Vegan", UserID: 1}, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Tag")).Return(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '1-Dessert' for key 'idx_tags_user_name'",
		})

		svc := NewTagService(repo)
		_, err := svc.Rename(context.Background(), 1, 2, "Dessert")

		assert.ErrorIs(t, err, errors.ErrTagNameTaken)
		assert.Equal(t, http.StatusBadRequest, errors.MapErrorToHTTP(err).StatusCode)
	})
}
