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

func TestJobCreate(t *testing.T) {
	ctx := context.Background()
	recruiter := domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}

	t.Run("Owner and defaults are stamped on create", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockCategories := new(MockCategoryRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockCategories)

		mockCategories.On("GetByID", ctx, "cat-1").Return(&domain.Category{ID: "cat-1"}, nil)
		mockJobs.On("Create", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job := &domain.Job{
			Title:          "Backend Engineer",
			EmploymentType: domain.EmploymentFullTime,
			SalaryMin:      50000,
			SalaryMax:      80000,
			CategoryID:     "cat-1",
		}
		err := uc.Create(ctx, recruiter, job)

		assert.NoError(t, err)
		assert.Equal(t, "rec-1", job.RecruiterID)
		assert.Equal(t, domain.JobStatusActive, job.Status)
		assert.NotEmpty(t, job.ID)
	})

	t.Run("Unknown category is a 404", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockCategories := new(MockCategoryRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockCategories)

		mockCategories.On("GetByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		job := &domain.Job{Title: "X", EmploymentType: domain.EmploymentContract, CategoryID: "ghost"}
		err := uc.Create(ctx, recruiter, job)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appCode(t, err))
	})

	t.Run("Inverted salary range is rejected", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockCategories := new(MockCategoryRepo)
		uc := usecase.NewJobUsecase(mockJobs, mockCategories)

		job := &domain.Job{
			Title:          "X",
			EmploymentType: domain.EmploymentFullTime,
			SalaryMin:      90000,
			SalaryMax:      50000,
			CategoryID:     "cat-1",
		}
		err := uc.Create(ctx, recruiter, job)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})
}

func TestJobOwnership(t *testing.T) {
	ctx := context.Background()
	owned := &domain.Job{
		ID:             "job-1",
		Title:          "Backend Engineer",
		EmploymentType: domain.EmploymentFullTime,
		Status:         domain.JobStatusActive,
		RecruiterID:    "rec-1",
		CategoryID:     "cat-1",
	}

	t.Run("Another recruiter cannot update the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo))

		mockJobs.On("GetByID", ctx, "job-1").Return(owned, nil)

		job := *owned
		err := uc.Update(ctx, domain.Requester{ID: "rec-2", Role: domain.RoleRecruiter}, &job)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
		mockJobs.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Admin bypasses the ownership gate", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo))

		mockJobs.On("GetByID", ctx, "job-1").Return(owned, nil)
		mockJobs.On("Update", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job := *owned
		err := uc.Update(ctx, domain.Requester{ID: "admin-1", Role: domain.RoleAdmin}, &job)

		assert.NoError(t, err)
	})

	t.Run("Another recruiter cannot delete the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo))

		mockJobs.On("GetByID", ctx, "job-1").Return(owned, nil)

		err := uc.Delete(ctx, domain.Requester{ID: "rec-2", Role: domain.RoleRecruiter}, "job-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
		mockJobs.AssertNotCalled(t, "DeleteCascade", ctx, "job-1", "cat-1")
	})
}

func TestJobStatusTransitions(t *testing.T) {
	ctx := context.Background()
	owner := domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}

	newUC := func(status string) (domain.JobUsecase, *MockJobRepo) {
		mockJobs := new(MockJobRepo)
		mockJobs.On("GetByID", ctx, "job-1").Return(&domain.Job{
			ID:          "job-1",
			Status:      status,
			RecruiterID: "rec-1",
			CategoryID:  "cat-1",
		}, nil)
		return usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo)), mockJobs
	}

	t.Run("Draft can be published", func(t *testing.T) {
		uc, mockJobs := newUC(domain.JobStatusDraft)
		mockJobs.On("Update", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.UpdateStatus(ctx, owner, "job-1", domain.JobStatusActive)

		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusActive, job.Status)
	})

	t.Run("Closed job cannot reopen", func(t *testing.T) {
		uc, mockJobs := newUC(domain.JobStatusClosed)

		_, err := uc.UpdateStatus(ctx, owner, "job-1", domain.JobStatusActive)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		mockJobs.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Active job cannot go back to draft", func(t *testing.T) {
		uc, _ := newUC(domain.JobStatusActive)

		_, err := uc.UpdateStatus(ctx, owner, "job-1", domain.JobStatusDraft)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("Setting the current status is a no-op", func(t *testing.T) {
		uc, mockJobs := newUC(domain.JobStatusActive)
		mockJobs.On("Update", ctx, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.UpdateStatus(ctx, owner, "job-1", domain.JobStatusActive)

		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusActive, job.Status)
	})

	t.Run("Unknown status is a 400", func(t *testing.T) {
		uc, _ := newUC(domain.JobStatusActive)

		_, err := uc.UpdateStatus(ctx, owner, "job-1", "PAUSED")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})
}

func TestJobDeleteCascade(t *testing.T) {
	ctx := context.Background()

	mockJobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo))

	mockJobs.On("GetByID", ctx, "job-1").Return(&domain.Job{
		ID: "job-1", RecruiterID: "rec-1", CategoryID: "cat-1",
	}, nil)
	mockJobs.On("DeleteCascade", ctx, "job-1", "cat-1").Return(nil)

	err := uc.Delete(ctx, domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}, "job-1")

	assert.NoError(t, err)
	mockJobs.AssertCalled(t, "DeleteCascade", ctx, "job-1", "cat-1")
}

func TestJobSearchPagination(t *testing.T) {
	ctx := context.Background()

	mockJobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(mockJobs, new(MockCategoryRepo))

	// Out-of-range paging falls back to page 1 / limit 10.
	mockJobs.On("Fetch", ctx, domain.JobFilter{}, 10, 0).Return([]domain.Job{}, int64(0), nil)

	_, _, err := uc.Search(ctx, domain.JobFilter{}, 0, -5)

	assert.NoError(t, err)
	mockJobs.AssertCalled(t, "Fetch", ctx, domain.JobFilter{}, 10, 0)
}
