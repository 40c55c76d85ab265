package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSavedJobs(t *testing.T) {
	ctx := context.Background()

	t.Run("Saving a job records the pair", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)

		mockJobs.On("GetByID", ctx, "job-1").Return(&domain.Job{ID: "job-1"}, nil)
		mockSaved.On("Create", ctx, mock.AnythingOfType("*domain.SavedJob")).Return(nil)

		saved, err := uc.Save(ctx, "user-1", "job-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", saved.UserID)
		assert.Equal(t, "job-1", saved.JobID)
		assert.NotEmpty(t, saved.ID)
	})

	t.Run("Saving twice is a 409", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)

		mockJobs.On("GetByID", ctx, "job-1").Return(&domain.Job{ID: "job-1"}, nil)
		mockSaved.On("Create", ctx, mock.AnythingOfType("*domain.SavedJob")).Return(domain.ErrDuplicate)

		_, err := uc.Save(ctx, "user-1", "job-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("Saving a missing job is a 404", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewSavedJobUsecase(mockSaved, mockJobs)

		mockJobs.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.Save(ctx, "user-1", "ghost")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
		mockSaved.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Unsaving an unsaved job is a 404", func(t *testing.T) {
		mockSaved := new(MockSavedJobRepo)
		uc := usecase.NewSavedJobUsecase(mockSaved, new(MockJobRepo))

		mockSaved.On("Delete", ctx, "user-1", "job-1").Return(domain.ErrNotFound)

		err := uc.Unsave(ctx, "user-1", "job-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})
}
