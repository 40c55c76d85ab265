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

func TestCVDefaultInvariant(t *testing.T) {
	ctx := context.Background()

	t.Run("First CV becomes the default", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)

		mockCVs.On("CountByUser", ctx, "user-1").Return(int64(0), nil)
		mockCVs.On("Create", ctx, mock.AnythingOfType("*domain.CV")).Return(nil)

		cv := &domain.CV{Title: "My CV"}
		err := uc.Create(ctx, "user-1", cv)

		assert.NoError(t, err)
		assert.True(t, cv.IsDefault)
		assert.Equal(t, "user-1", cv.UserID)
	})

	t.Run("Later CVs are not default", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)

		mockCVs.On("CountByUser", ctx, "user-1").Return(int64(2), nil)
		mockCVs.On("Create", ctx, mock.AnythingOfType("*domain.CV")).Return(nil)

		cv := &domain.CV{Title: "Second CV", IsDefault: true}
		err := uc.Create(ctx, "user-1", cv)

		assert.NoError(t, err)
		assert.False(t, cv.IsDefault)
	})

	t.Run("SetDefault goes through the repository swap", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)

		mockCVs.On("SetDefault", ctx, "user-1", "cv-2").Return(nil)
		mockCVs.On("GetByID", ctx, "cv-2").Return(&domain.CV{ID: "cv-2", UserID: "user-1", IsDefault: true}, nil)

		cv, err := uc.SetDefault(ctx, "user-1", "cv-2")

		assert.NoError(t, err)
		assert.True(t, cv.IsDefault)
	})

	t.Run("SetDefault on someone else's CV is a 404", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)

		mockCVs.On("SetDefault", ctx, "user-2", "cv-1").Return(domain.ErrNotFound)

		_, err := uc.SetDefault(ctx, "user-2", "cv-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("Deleting the default hands the flag to the repository", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)

		cv := &domain.CV{ID: "cv-1", UserID: "user-1", IsDefault: true}
		mockCVs.On("GetByID", ctx, "cv-1").Return(cv, nil)
		mockCVs.On("Delete", ctx, cv).Return(nil)

		err := uc.Delete(ctx, "user-1", "cv-1")

		assert.NoError(t, err)
		mockCVs.AssertCalled(t, "Delete", ctx, cv)
	})
}

func TestCVAccess(t *testing.T) {
	ctx := context.Background()
	cv := &domain.CV{ID: "cv-1", UserID: "user-1", Title: "My CV"}

	t.Run("Owner can read", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)
		mockCVs.On("GetByID", ctx, "cv-1").Return(cv, nil)

		got, err := uc.Get(ctx, domain.Requester{ID: "user-1", Role: domain.RoleCandidate}, "cv-1")

		assert.NoError(t, err)
		assert.Equal(t, "My CV", got.Title)
	})

	t.Run("Recruiter can read", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)
		mockCVs.On("GetByID", ctx, "cv-1").Return(cv, nil)

		_, err := uc.Get(ctx, domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}, "cv-1")

		assert.NoError(t, err)
	})

	t.Run("Another candidate cannot read", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)
		mockCVs.On("GetByID", ctx, "cv-1").Return(cv, nil)

		_, err := uc.Get(ctx, domain.Requester{ID: "user-2", Role: domain.RoleCandidate}, "cv-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})

	t.Run("Updating someone else's CV reads as missing", func(t *testing.T) {
		mockCVs := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockCVs)
		mockCVs.On("GetByID", ctx, "cv-1").Return(cv, nil)

		_, err := uc.Update(ctx, "user-2", &domain.CV{ID: "cv-1", Title: "Hijack"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})
}
