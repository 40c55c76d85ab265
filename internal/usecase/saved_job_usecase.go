package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

type savedJobUsecase struct {
	savedJobRepo domain.SavedJobRepository
	jobRepo      domain.JobRepository
}

func NewSavedJobUsecase(savedJobRepo domain.SavedJobRepository, jobRepo domain.JobRepository) domain.SavedJobUsecase {
	return &savedJobUsecase{savedJobRepo: savedJobRepo, jobRepo: jobRepo}
}

func (u *savedJobUsecase) Save(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}

	saved := &domain.SavedJob{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     jobID,
		CreatedAt: time.Now(),
	}

	if err := u.savedJobRepo.Create(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Job already saved")
		}
		return nil, apperror.Internal(err)
	}
	return saved, nil
}

func (u *savedJobUsecase) Unsave(ctx context.Context, userID, jobID string) error {
	if err := u.savedJobRepo.Delete(ctx, userID, jobID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Saved job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *savedJobUsecase) List(ctx context.Context, userID string, page, limit int) ([]domain.SavedJob, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return u.savedJobRepo.FetchByUser(ctx, userID, limit, offset)
}
