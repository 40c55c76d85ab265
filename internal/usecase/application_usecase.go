package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	userRepo        domain.UserRepository
	notifier        domain.Notifier
}

func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

func (u *applicationUsecase) Apply(ctx context.Context, requester domain.Requester, jobID, cvURL, coverLetter string) (*domain.Application, error) {
	if cvURL == "" {
		return nil, apperror.BadRequest("A CV is required to apply")
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("This job is not accepting applications")
	}

	exists, err := u.applicationRepo.Exists(ctx, jobID, requester.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied for this job")
	}

	app := &domain.Application{
		ID:        uuid.NewString(),
		UserID:    requester.ID,
		JobID:     jobID,
		Status:    domain.ApplicationStatusPending,
		CvURL:     cvURL,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if coverLetter != "" {
		app.CoverLetter = &coverLetter
	}

	if err := u.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied for this job")
		}
		return nil, apperror.Internal(err)
	}

	subject := fmt.Sprintf("New application for %s", job.Title)
	body := fmt.Sprintf("A candidate has applied for your job posting %q.", job.Title)
	u.notifyAsync(job.RecruiterID, subject, body)

	return app, nil
}

func (u *applicationUsecase) GetMine(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := u.applicationRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (u *applicationUsecase) ListByJob(ctx context.Context, requester domain.Requester, jobID, status string, page, limit int) ([]domain.Application, int64, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, apperror.NotFound("Job not found")
		}
		return nil, 0, apperror.Internal(err)
	}
	if job.RecruiterID != requester.ID && !requester.IsAdmin() {
		return nil, 0, apperror.Forbidden("You can only view applications for your own jobs")
	}

	if status != "" && !domain.IsValidApplicationStatus(status) {
		return nil, 0, apperror.BadRequest("Invalid application status filter")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return u.applicationRepo.FetchByJob(ctx, jobID, status, limit, offset)
}

func (u *applicationUsecase) UpdateStatus(ctx context.Context, requester domain.Requester, id string, review domain.ApplicationReview) (*domain.Application, error) {
	if !domain.IsValidApplicationStatus(review.Status) {
		return nil, apperror.BadRequest("Status must be PENDING, REVIEWING, ACCEPTED or REJECTED")
	}

	app, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.RecruiterID != requester.ID && !requester.IsAdmin() {
		return nil, apperror.Forbidden("You can only review applications for your own jobs")
	}

	if !domain.CanTransitionApplication(app.Status, review.Status) {
		return nil, apperror.Conflict("Cannot change application status from " + app.Status + " to " + review.Status)
	}

	statusChanged := app.Status != review.Status
	app.Status = review.Status
	if review.RecruiterNotes != nil {
		app.RecruiterNotes = review.RecruiterNotes
	}
	if review.InterviewDate != nil {
		app.InterviewDate = review.InterviewDate
	}
	app.UpdatedAt = time.Now()

	if err := u.applicationRepo.Update(ctx, app); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	if statusChanged {
		subject := fmt.Sprintf("Your application for %s was updated", job.Title)
		body := fmt.Sprintf("The status of your application for %q is now %s.", job.Title, app.Status)
		u.notifyAsync(app.UserID, subject, body)
	}

	return app, nil
}

func (u *applicationUsecase) Delete(ctx context.Context, requester domain.Requester, id string) error {
	app, err := u.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if app.UserID != requester.ID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}

	if err := u.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// notifyAsync resolves the recipient and sends the email off the request
// path. Failures are logged and otherwise ignored.
func (u *applicationUsecase) notifyAsync(userID, subject, body string) {
	go func() {
		user, err := u.userRepo.GetByID(context.Background(), userID)
		if err != nil {
			if logger.Log != nil {
				logger.Log.Warn("notification recipient lookup failed", "user_id", userID, "error", err)
			}
			return
		}
		if err := u.notifier.Notify(user.Email, subject, body); err != nil {
			if logger.Log != nil {
				logger.Log.Warn("notification delivery failed", "user_id", userID, "error", err)
			}
		}
	}()
}
