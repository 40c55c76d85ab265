package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func activeJob() *domain.Job {
	return &domain.Job{
		ID:          "job-1",
		Title:       "Backend Engineer",
		Status:      domain.JobStatusActive,
		RecruiterID: "rec-1",
		CategoryID:  "cat-1",
	}
}

func waitForNotify(t *testing.T, n *fakeNotifier) string {
	t.Helper()
	select {
	case to := <-n.sent:
		return to
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
		return ""
	}
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	candidate := domain.Requester{ID: "user-1", Role: domain.RoleCandidate}

	t.Run("Successful apply notifies the recruiter", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockUsers := new(MockUserRepo)
		notifier := newFakeNotifier(nil)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockUsers, notifier)

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)
		mockApps.On("Exists", ctx, "job-1", "user-1").Return(false, nil)
		mockApps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		mockUsers.On("GetByID", mock.Anything, "rec-1").Return(&domain.User{ID: "rec-1", Email: "rec@acme.io"}, nil)

		app, err := uc.Apply(ctx, candidate, "job-1", "https://cv.example/u1.pdf", "hello")

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, app.Status)
		assert.Equal(t, "user-1", app.UserID)
		assert.Equal(t, "rec@acme.io", waitForNotify(t, notifier))
	})

	t.Run("Second apply to the same job is a 409", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo), newFakeNotifier(nil))

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)
		mockApps.On("Exists", ctx, "job-1", "user-1").Return(true, nil)

		_, err := uc.Apply(ctx, candidate, "job-1", "https://cv.example/u1.pdf", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		mockApps.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("Losing the insert race is still a 409", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo), newFakeNotifier(nil))

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)
		mockApps.On("Exists", ctx, "job-1", "user-1").Return(false, nil)
		mockApps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)

		_, err := uc.Apply(ctx, candidate, "job-1", "https://cv.example/u1.pdf", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
	})

	t.Run("Cannot apply to a job that is not active", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo), newFakeNotifier(nil))

		closed := activeJob()
		closed.Status = domain.JobStatusClosed
		mockJobs.On("GetByID", ctx, "job-1").Return(closed, nil)

		_, err := uc.Apply(ctx, candidate, "job-1", "https://cv.example/u1.pdf", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("Missing CV is rejected before any lookup", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockUserRepo), newFakeNotifier(nil))

		_, err := uc.Apply(ctx, candidate, "job-1", "", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})

	t.Run("Notifier failure does not fail the apply", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockUsers := new(MockUserRepo)
		notifier := newFakeNotifier(errors.New("smtp down"))
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockUsers, notifier)

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)
		mockApps.On("Exists", ctx, "job-1", "user-1").Return(false, nil)
		mockApps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)
		mockUsers.On("GetByID", mock.Anything, "rec-1").Return(&domain.User{ID: "rec-1", Email: "rec@acme.io"}, nil)

		_, err := uc.Apply(ctx, candidate, "job-1", "https://cv.example/u1.pdf", "")

		assert.NoError(t, err)
		waitForNotify(t, notifier)
	})
}

func TestApplicationListByJob(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the posting recruiter may list applicants", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo), newFakeNotifier(nil))

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)

		_, _, err := uc.ListByJob(ctx, domain.Requester{ID: "rec-2", Role: domain.RoleRecruiter}, "job-1", "", 1, 10)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})

	t.Run("Bad status filter is a 400", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo), newFakeNotifier(nil))

		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)

		_, _, err := uc.ListByJob(ctx, domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}, "job-1", "WAITING", 1, 10)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, appCode(t, err))
	})
}

func TestApplicationStatusTransitions(t *testing.T) {
	ctx := context.Background()
	owner := domain.Requester{ID: "rec-1", Role: domain.RoleRecruiter}

	newUC := func(status string) (domain.ApplicationUsecase, *MockApplicationRepo, *fakeNotifier) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		mockUsers := new(MockUserRepo)
		notifier := newFakeNotifier(nil)

		mockApps.On("GetByID", ctx, "app-1").Return(&domain.Application{
			ID: "app-1", UserID: "user-1", JobID: "job-1", Status: status,
		}, nil)
		mockJobs.On("GetByID", ctx, "job-1").Return(activeJob(), nil)
		mockUsers.On("GetByID", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", Email: "u1@mail.io"}, nil)

		return usecase.NewApplicationUsecase(mockApps, mockJobs, mockUsers, notifier), mockApps, notifier
	}

	t.Run("Pending moves to reviewing and the applicant is told", func(t *testing.T) {
		uc, mockApps, notifier := newUC(domain.ApplicationStatusPending)
		mockApps.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.UpdateStatus(ctx, owner, "app-1", domain.ApplicationReview{Status: domain.ApplicationStatusReviewing})

		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusReviewing, app.Status)
		assert.Equal(t, "u1@mail.io", waitForNotify(t, notifier))
	})

	t.Run("Rejected is final", func(t *testing.T) {
		uc, mockApps, _ := newUC(domain.ApplicationStatusRejected)

		_, err := uc.UpdateStatus(ctx, owner, "app-1", domain.ApplicationReview{Status: domain.ApplicationStatusReviewing})

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appCode(t, err))
		mockApps.AssertNotCalled(t, "Update", ctx, mock.Anything)
	})

	t.Run("Re-setting the same status skips the notification", func(t *testing.T) {
		uc, mockApps, notifier := newUC(domain.ApplicationStatusReviewing)
		mockApps.On("Update", ctx, mock.AnythingOfType("*domain.Application")).Return(nil)

		notes := "good fit"
		_, err := uc.UpdateStatus(ctx, owner, "app-1", domain.ApplicationReview{
			Status:         domain.ApplicationStatusReviewing,
			RecruiterNotes: &notes,
		})

		assert.NoError(t, err)
		select {
		case <-notifier.sent:
			t.Fatal("unexpected notification")
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("Foreign recruiter cannot review", func(t *testing.T) {
		uc, _, _ := newUC(domain.ApplicationStatusPending)

		_, err := uc.UpdateStatus(ctx, domain.Requester{ID: "rec-2", Role: domain.RoleRecruiter}, "app-1", domain.ApplicationReview{Status: domain.ApplicationStatusAccepted})

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})
}

func TestApplicationWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("Only the applicant may withdraw", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockUserRepo), newFakeNotifier(nil))

		mockApps.On("GetByID", ctx, "app-1").Return(&domain.Application{
			ID: "app-1", UserID: "user-1", JobID: "job-1", Status: domain.ApplicationStatusPending,
		}, nil)

		err := uc.Delete(ctx, domain.Requester{ID: "user-2", Role: domain.RoleCandidate}, "app-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appCode(t, err))
	})

	t.Run("Owner withdraw deletes the application", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, new(MockJobRepo), new(MockUserRepo), newFakeNotifier(nil))

		mockApps.On("GetByID", ctx, "app-1").Return(&domain.Application{
			ID: "app-1", UserID: "user-1", JobID: "job-1", Status: domain.ApplicationStatusPending,
		}, nil)
		mockApps.On("Delete", ctx, "app-1").Return(nil)

		err := uc.Delete(ctx, domain.Requester{ID: "user-1", Role: domain.RoleCandidate}, "app-1")

		assert.NoError(t, err)
	})
}
