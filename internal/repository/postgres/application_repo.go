package postgres

import (
	"context"
	"errors"
	"strconv"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumns = `id, user_id, job_id, status, cover_letter, cv_url, recruiter_notes, interview_date, created_at, updated_at`

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row, a *domain.Application) error {
	return row.Scan(
		&a.ID, &a.UserID, &a.JobID, &a.Status,
		&a.CoverLetter, &a.CvURL, &a.RecruiterNotes, &a.InterviewDate,
		&a.CreatedAt, &a.UpdatedAt,
	)
}

// Create relies on the (job_id, user_id) unique constraint to close
// the race between two concurrent applies.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `INSERT INTO applications (` + applicationColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, query,
		app.ID, app.UserID, app.JobID, app.Status,
		app.CoverLetter, app.CvURL, app.RecruiterNotes, app.InterviewDate,
		app.CreatedAt, app.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, query, id), &app); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepo) FetchByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.user_id, a.job_id, a.status, a.cover_letter, a.cv_url,
		       a.recruiter_notes, a.interview_date, a.created_at, a.updated_at,
		       j.title
		FROM applications a
		LEFT JOIN jobs j ON a.job_id = j.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.JobID, &a.Status, &a.CoverLetter, &a.CvURL,
			&a.RecruiterNotes, &a.InterviewDate, &a.CreatedAt, &a.UpdatedAt,
			&a.JobTitle,
		); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *applicationRepo) FetchByJob(ctx context.Context, jobID, status string, limit, offset int) ([]domain.Application, int64, error) {
	where := `WHERE a.job_id = $1`
	args := []interface{}{jobID}
	if status != "" {
		where += ` AND a.status = $2`
		args = append(args, status)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM applications a ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT a.id, a.user_id, a.job_id, a.status, a.cover_letter, a.cv_url,
		       a.recruiter_notes, a.interview_date, a.created_at, a.updated_at,
		       u.name
		FROM applications a
		LEFT JOIN users u ON a.user_id = u.id
		` + where + `
		ORDER BY a.created_at DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		var a domain.Application
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.JobID, &a.Status, &a.CoverLetter, &a.CvURL,
			&a.RecruiterNotes, &a.InterviewDate, &a.CreatedAt, &a.UpdatedAt,
			&a.ApplicantName,
		); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) Update(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET
		status = $2,
		recruiter_notes = $3,
		interview_date = $4,
		updated_at = $5
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		app.ID, app.Status, app.RecruiterNotes, app.InterviewDate, app.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
