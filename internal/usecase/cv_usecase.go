package usecase

import (
	"context"
	"errors"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/google/uuid"
)

type cvUsecase struct {
	cvRepo domain.CVRepository
}

func NewCVUsecase(cvRepo domain.CVRepository) domain.CVUsecase {
	return &cvUsecase{cvRepo: cvRepo}
}

func (u *cvUsecase) Create(ctx context.Context, userID string, cv *domain.CV) error {
	if cv.Title == "" {
		return apperror.BadRequest("Title is required")
	}

	count, err := u.cvRepo.CountByUser(ctx, userID)
	if err != nil {
		return apperror.Internal(err)
	}

	cv.ID = uuid.NewString()
	cv.UserID = userID
	// The user's first CV becomes the default.
	cv.IsDefault = count == 0
	cv.CreatedAt = time.Now()
	cv.UpdatedAt = time.Now()

	if err := u.cvRepo.Create(ctx, cv); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *cvUsecase) GetMine(ctx context.Context, userID string) ([]domain.CV, error) {
	cvs, err := u.cvRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cvs, nil
}

// Get allows the owner, recruiters and admins to read a CV. Recruiters
// see CVs attached to applications, so read access is role-wide.
func (u *cvUsecase) Get(ctx context.Context, requester domain.Requester, id string) (*domain.CV, error) {
	cv, err := u.cvRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("CV not found")
		}
		return nil, apperror.Internal(err)
	}

	if cv.UserID != requester.ID && requester.Role != domain.RoleRecruiter && !requester.IsAdmin() {
		return nil, apperror.Forbidden("You do not have access to this CV")
	}
	return cv, nil
}

func (u *cvUsecase) Update(ctx context.Context, userID string, cv *domain.CV) (*domain.CV, error) {
	existing, err := u.cvRepo.GetByID(ctx, cv.ID)
	if err != nil || existing.UserID != userID {
		return nil, apperror.NotFound("CV not found")
	}

	if cv.Title == "" {
		cv.Title = existing.Title
	}
	cv.UserID = existing.UserID
	cv.IsDefault = existing.IsDefault
	cv.CreatedAt = existing.CreatedAt
	cv.UpdatedAt = time.Now()

	if err := u.cvRepo.Update(ctx, cv); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("CV not found")
		}
		return nil, apperror.Internal(err)
	}
	return u.cvRepo.GetByID(ctx, cv.ID)
}

func (u *cvUsecase) SetDefault(ctx context.Context, userID, id string) (*domain.CV, error) {
	if err := u.cvRepo.SetDefault(ctx, userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("CV not found")
		}
		return nil, apperror.Internal(err)
	}
	return u.cvRepo.GetByID(ctx, id)
}

func (u *cvUsecase) Delete(ctx context.Context, userID, id string) error {
	cv, err := u.cvRepo.GetByID(ctx, id)
	if err != nil || cv.UserID != userID {
		return apperror.NotFound("CV not found")
	}

	if err := u.cvRepo.Delete(ctx, cv); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("CV not found")
		}
		return apperror.Internal(err)
	}
	return nil
}
