package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusPending   = "PENDING"
	ApplicationStatusReviewing = "REVIEWING"
	ApplicationStatusAccepted  = "ACCEPTED"
	ApplicationStatusRejected  = "REJECTED"
)

// applicationTransitions: PENDING -> REVIEWING / ACCEPTED / REJECTED,
// REVIEWING -> ACCEPTED / REJECTED. Accepted and rejected are final.
var applicationTransitions = map[string][]string{
	ApplicationStatusPending:   {ApplicationStatusReviewing, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusReviewing: {ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusAccepted:  {},
	ApplicationStatusRejected:  {},
}

// CanTransitionApplication reports whether an application may move
// between the two statuses.
func CanTransitionApplication(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidApplicationStatus reports whether s is an enumerated status.
func IsValidApplicationStatus(s string) bool {
	_, ok := applicationTransitions[s]
	return ok
}

// Application is a candidate's submission for a job. At most one
// application exists per (user, job) pair.
type Application struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	JobID          string     `json:"job_id"`
	Status         string     `json:"status"`
	CoverLetter    *string    `json:"cover_letter,omitempty"`
	CvURL          string     `json:"cv_url"`
	RecruiterNotes *string    `json:"recruiter_notes,omitempty"`
	InterviewDate  *time.Time `json:"interview_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Joined data for list responses
	ApplicantName *string `json:"applicant_name,omitempty"`
	JobTitle      *string `json:"job_title,omitempty"`
}

// ApplicationReview is the recruiter-side mutation of an application.
type ApplicationReview struct {
	Status         string
	RecruiterNotes *string
	InterviewDate  *time.Time
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the (user, job) uniqueness
	// constraint rejects the insert.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	FetchByUser(ctx context.Context, userID string) ([]Application, error)
	FetchByJob(ctx context.Context, jobID, status string, limit, offset int) ([]Application, int64, error)
	Exists(ctx context.Context, jobID, userID string) (bool, error)
	Update(ctx context.Context, app *Application) error
	Delete(ctx context.Context, id string) error
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, requester Requester, jobID, cvURL, coverLetter string) (*Application, error)
	GetMine(ctx context.Context, userID string) ([]Application, error)
	ListByJob(ctx context.Context, requester Requester, jobID, status string, page, limit int) ([]Application, int64, error)
	UpdateStatus(ctx context.Context, requester Requester, id string, review ApplicationReview) (*Application, error)
	Delete(ctx context.Context, requester Requester, id string) error
}
