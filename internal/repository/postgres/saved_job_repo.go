package postgres

import (
	"context"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type savedJobRepo struct {
	db *pgxpool.Pool
}

func NewSavedJobRepository(db *pgxpool.Pool) domain.SavedJobRepository {
	return &savedJobRepo{db: db}
}

func (r *savedJobRepo) Create(ctx context.Context, saved *domain.SavedJob) error {
	query := `INSERT INTO saved_jobs (id, user_id, job_id, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Exec(ctx, query, saved.ID, saved.UserID, saved.JobID, saved.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *savedJobRepo) Delete(ctx context.Context, userID, jobID string) error {
	result, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`,
		userID, jobID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *savedJobRepo) FetchByUser(ctx context.Context, userID string, limit, offset int) ([]domain.SavedJob, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT s.id, s.user_id, s.job_id, s.created_at,
		       j.id, j.title, j.description, j.requirements, j.salary_min, j.salary_max,
		       j.location, j.employment_type, j.experience_level, j.skills,
		       j.deadline, j.status, j.recruiter_id, j.category_id, j.created_at, j.updated_at,
		       c.name
		FROM saved_jobs s
		JOIN jobs j ON s.job_id = j.id
		LEFT JOIN job_categories c ON j.category_id = c.id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var saved []domain.SavedJob
	for rows.Next() {
		var s domain.SavedJob
		var job domain.Job
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.CreatedAt,
			&job.ID, &job.Title, &job.Description, &job.Requirements,
			&job.SalaryMin, &job.SalaryMax, &job.Location,
			&job.EmploymentType, &job.ExperienceLevel, &job.Skills,
			&job.Deadline, &job.Status, &job.RecruiterID, &job.CategoryID,
			&job.CreatedAt, &job.UpdatedAt,
			&job.CategoryName,
		); err != nil {
			return nil, 0, err
		}
		s.Job = &job
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return saved, total, nil
}
