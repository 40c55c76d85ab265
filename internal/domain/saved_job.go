package domain

import (
	"context"
	"time"
)

// SavedJob is a (user, job) bookmark, unique per pair.
type SavedJob struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	JobID     string    `json:"job_id"`
	CreatedAt time.Time `json:"created_at"`

	Job *Job `json:"job,omitempty"`
}

type SavedJobRepository interface {
	// Create returns ErrDuplicate when the pair is already saved.
	Create(ctx context.Context, saved *SavedJob) error
	Delete(ctx context.Context, userID, jobID string) error
	FetchByUser(ctx context.Context, userID string, limit, offset int) ([]SavedJob, int64, error)
}

type SavedJobUsecase interface {
	Save(ctx context.Context, userID, jobID string) (*SavedJob, error)
	Unsave(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string, page, limit int) ([]SavedJob, int64, error)
}
