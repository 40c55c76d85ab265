package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumns = `id, title, description, requirements, salary_min, salary_max, location, employment_type, experience_level, skills, deadline, status, recruiter_id, category_id, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row, j *domain.Job) error {
	return row.Scan(
		&j.ID, &j.Title, &j.Description, &j.Requirements,
		&j.SalaryMin, &j.SalaryMax, &j.Location,
		&j.EmploymentType, &j.ExperienceLevel, &j.Skills,
		&j.Deadline, &j.Status, &j.RecruiterID, &j.CategoryID,
		&j.CreatedAt, &j.UpdatedAt,
	)
}

// Create inserts the job and bumps the category's denormalized job
// counter as one transaction.
func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO jobs (` + jobColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	if _, err := tx.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements,
		job.SalaryMin, job.SalaryMax, job.Location,
		job.EmploymentType, job.ExperienceLevel, job.Skills,
		job.Deadline, job.Status, job.RecruiterID, job.CategoryID,
		job.CreatedAt, job.UpdatedAt,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE job_categories SET total_jobs = total_jobs + 1 WHERE id = $1`,
		job.CategoryID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `
		SELECT j.id, j.title, j.description, j.requirements, j.salary_min, j.salary_max,
		       j.location, j.employment_type, j.experience_level, j.skills,
		       j.deadline, j.status, j.recruiter_id, j.category_id, j.created_at, j.updated_at,
		       c.name
		FROM jobs j
		LEFT JOIN job_categories c ON j.category_id = c.id
		WHERE j.id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Description, &job.Requirements,
		&job.SalaryMin, &job.SalaryMax, &job.Location,
		&job.EmploymentType, &job.ExperienceLevel, &job.Skills,
		&job.Deadline, &job.Status, &job.RecruiterID, &job.CategoryID,
		&job.CreatedAt, &job.UpdatedAt,
		&job.CategoryName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// Fetch runs the combined search: every set filter field narrows the
// result, all conditions ANDed together.
func (r *jobRepo) Fetch(ctx context.Context, filter domain.JobFilter, limit, offset int) ([]domain.Job, int64, error) {
	where := ""
	var args []interface{}

	addCond := func(cond string, vals ...interface{}) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, vals...)
		where += fmt.Sprintf(cond, len(args))
	}

	if filter.Status != "" {
		addCond("j.status = $%d", filter.Status)
	}
	if filter.Search != "" {
		addCond("(j.title ILIKE $%d OR j.description ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		addCond("j.category_id = $%d", filter.CategoryID)
	}
	if filter.EmploymentType != "" {
		addCond("j.employment_type = $%d", filter.EmploymentType)
	}
	if filter.ExperienceLevel != "" {
		addCond("j.experience_level = $%d", filter.ExperienceLevel)
	}
	if filter.Location != "" {
		addCond("j.location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.MinSalary != nil {
		addCond("j.salary_max >= $%d", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		addCond("j.salary_min <= $%d", *filter.MaxSalary)
	}
	if len(filter.Skills) > 0 {
		// requested skills must be a subset of the job's skills
		addCond("j.skills @> $%d", filter.Skills)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs j`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT j.id, j.title, j.description, j.requirements, j.salary_min, j.salary_max,
		       j.location, j.employment_type, j.experience_level, j.skills,
		       j.deadline, j.status, j.recruiter_id, j.category_id, j.created_at, j.updated_at,
		       c.name
		FROM jobs j
		LEFT JOIN job_categories c ON j.category_id = c.id%s
		ORDER BY j.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(
			&job.ID, &job.Title, &job.Description, &job.Requirements,
			&job.SalaryMin, &job.SalaryMax, &job.Location,
			&job.EmploymentType, &job.ExperienceLevel, &job.Skills,
			&job.Deadline, &job.Status, &job.RecruiterID, &job.CategoryID,
			&job.CreatedAt, &job.UpdatedAt,
			&job.CategoryName,
		); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) FetchByRecruiter(ctx context.Context, recruiterID string, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, recruiterID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := scanJob(rows, &job); err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE recruiter_id = $1`, recruiterID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET
		title = $2,
		description = $3,
		requirements = $4,
		salary_min = $5,
		salary_max = $6,
		location = $7,
		employment_type = $8,
		experience_level = $9,
		skills = $10,
		deadline = $11,
		status = $12,
		updated_at = $13
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Requirements,
		job.SalaryMin, job.SalaryMax, job.Location,
		job.EmploymentType, job.ExperienceLevel, job.Skills,
		job.Deadline, job.Status, job.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the job together with its applications and
// saved-job bookmarks and decrements the category counter. All four
// writes commit or none do.
func (r *jobRepo) DeleteCascade(ctx context.Context, id, categoryID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE job_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM saved_jobs WHERE job_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE job_categories SET total_jobs = GREATEST(total_jobs - 1, 0) WHERE id = $1`,
		categoryID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
