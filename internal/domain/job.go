package domain

import (
	"context"
	"time"
)

// Job status constants
const (
	JobStatusDraft  = "DRAFT"
	JobStatusActive = "ACTIVE"
	JobStatusClosed = "CLOSED"
)

// Employment type constants
const (
	EmploymentFullTime   = "FULL_TIME"
	EmploymentPartTime   = "PART_TIME"
	EmploymentContract   = "CONTRACT"
	EmploymentInternship = "INTERNSHIP"
)

// jobTransitions is the explicit state machine for job status:
// DRAFT -> ACTIVE -> CLOSED, with DRAFT -> CLOSED as a shortcut.
// CLOSED is terminal.
var jobTransitions = map[string][]string{
	JobStatusDraft:  {JobStatusActive, JobStatusClosed},
	JobStatusActive: {JobStatusClosed},
	JobStatusClosed: {},
}

// CanTransitionJob reports whether a job may move from one status to
// another. Setting the same status again is a no-op and allowed.
func CanTransitionJob(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range jobTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidJobStatus reports whether s is one of the enumerated statuses.
func IsValidJobStatus(s string) bool {
	_, ok := jobTransitions[s]
	return ok
}

type Job struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	SalaryMin       float64   `json:"salary_min"`
	SalaryMax       float64   `json:"salary_max"`
	Location        string    `json:"location"`
	EmploymentType  string    `json:"employment_type"`
	ExperienceLevel string    `json:"experience_level"`
	Skills          []string  `json:"skills"`
	Deadline        time.Time `json:"deadline"`
	Status          string    `json:"status"`
	RecruiterID     string    `json:"recruiter_id"`
	CategoryID      string    `json:"category_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined data for list responses
	CategoryName *string `json:"category_name,omitempty"`
}

// JobFilter combines search criteria; all set fields are ANDed.
type JobFilter struct {
	Search          string
	CategoryID      string
	EmploymentType  string
	ExperienceLevel string
	Location        string
	MinSalary       *float64
	MaxSalary       *float64
	Skills          []string
	Status          string
}

type JobRepository interface {
	// Create inserts the job and increments the owning category's
	// totalJobs counter in the same transaction.
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	Fetch(ctx context.Context, filter JobFilter, limit, offset int) ([]Job, int64, error)
	FetchByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// DeleteCascade removes the job, its applications and saved-job
	// bookmarks, and decrements the category counter as one atomic unit.
	DeleteCascade(ctx context.Context, id, categoryID string) error
}

type JobUsecase interface {
	Create(ctx context.Context, requester Requester, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	Search(ctx context.Context, filter JobFilter, page, limit int) ([]Job, int64, error)
	ListByRecruiter(ctx context.Context, recruiterID string, page, limit int) ([]Job, int64, error)
	Update(ctx context.Context, requester Requester, job *Job) error
	UpdateStatus(ctx context.Context, requester Requester, id, status string) (*Job, error)
	Delete(ctx context.Context, requester Requester, id string) error
}
