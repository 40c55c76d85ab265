package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

type jobUsecase struct {
	jobRepo      domain.JobRepository
	categoryRepo domain.CategoryRepository
}

func NewJobUsecase(jobRepo domain.JobRepository, categoryRepo domain.CategoryRepository) domain.JobUsecase {
	return &jobUsecase{jobRepo: jobRepo, categoryRepo: categoryRepo}
}

func validEmploymentType(t string) bool {
	switch t {
	case domain.EmploymentFullTime, domain.EmploymentPartTime, domain.EmploymentContract, domain.EmploymentInternship:
		return true
	}
	return false
}

func (u *jobUsecase) Create(ctx context.Context, requester domain.Requester, job *domain.Job) error {
	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if !validEmploymentType(job.EmploymentType) {
		return apperror.BadRequest("Invalid employment type")
	}
	if job.SalaryMin > job.SalaryMax {
		return apperror.BadRequest("salary_min cannot exceed salary_max")
	}

	if _, err := u.categoryRepo.GetByID(ctx, job.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal(err)
	}

	if job.Status == "" {
		job.Status = domain.JobStatusActive
	}
	if !domain.IsValidJobStatus(job.Status) {
		return apperror.BadRequest("Invalid job status")
	}

	job.ID = uuid.NewString()
	job.RecruiterID = requester.ID
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) Get(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) Search(ctx context.Context, filter domain.JobFilter, page, limit int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return u.jobRepo.Fetch(ctx, filter, limit, offset)
}

func (u *jobUsecase) ListByRecruiter(ctx context.Context, recruiterID string, page, limit int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return u.jobRepo.FetchByRecruiter(ctx, recruiterID, limit, offset)
}

func (u *jobUsecase) Update(ctx context.Context, requester domain.Requester, job *domain.Job) error {
	existing, err := u.jobRepo.GetByID(ctx, job.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if existing.RecruiterID != requester.ID && !requester.IsAdmin() {
		return apperror.Forbidden("You can only modify your own jobs")
	}

	if job.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if !validEmploymentType(job.EmploymentType) {
		return apperror.BadRequest("Invalid employment type")
	}
	if job.SalaryMin > job.SalaryMax {
		return apperror.BadRequest("salary_min cannot exceed salary_max")
	}

	if job.Status == "" {
		job.Status = existing.Status
	} else if !domain.CanTransitionJob(existing.Status, job.Status) {
		return apperror.Conflict("Cannot change job status from " + existing.Status + " to " + job.Status)
	}

	// Ownership and category are fixed at creation.
	job.RecruiterID = existing.RecruiterID
	job.CategoryID = existing.CategoryID
	job.CreatedAt = existing.CreatedAt
	job.UpdatedAt = time.Now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *jobUsecase) UpdateStatus(ctx context.Context, requester domain.Requester, id, status string) (*domain.Job, error) {
	if !domain.IsValidJobStatus(status) {
		return nil, apperror.BadRequest("Status must be DRAFT, ACTIVE or CLOSED")
	}

	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, apperror.Internal(err)
	}
	if job.RecruiterID != requester.ID && !requester.IsAdmin() {
		return nil, apperror.Forbidden("You can only modify your own jobs")
	}

	if !domain.CanTransitionJob(job.Status, status) {
		return nil, apperror.Conflict("Cannot change job status from " + job.Status + " to " + status)
	}

	job.Status = status
	job.UpdatedAt = time.Now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, apperror.Internal(err)
	}
	return job, nil
}

func (u *jobUsecase) Delete(ctx context.Context, requester domain.Requester, id string) error {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	if job.RecruiterID != requester.ID && !requester.IsAdmin() {
		return apperror.Forbidden("You can only delete your own jobs")
	}

	if err := u.jobRepo.DeleteCascade(ctx, id, job.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
