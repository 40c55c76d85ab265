package postgres

import (
	"context"
	"errors"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const cvColumns = `id, user_id, title, education, experience, skills, languages, certificates, projects, avatar, pdf_url, is_default, created_at, updated_at`

type cvRepo struct {
	db *pgxpool.Pool
}

func NewCVRepository(db *pgxpool.Pool) domain.CVRepository {
	return &cvRepo{db: db}
}

func scanCV(row pgx.Row, cv *domain.CV) error {
	return row.Scan(
		&cv.ID, &cv.UserID, &cv.Title,
		&cv.Education, &cv.Experience, &cv.Skills,
		&cv.Languages, &cv.Certificates, &cv.Projects,
		&cv.Avatar, &cv.PdfURL, &cv.IsDefault,
		&cv.CreatedAt, &cv.UpdatedAt,
	)
}

func (r *cvRepo) Create(ctx context.Context, cv *domain.CV) error {
	query := `INSERT INTO cvs (` + cvColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.db.Exec(ctx, query,
		cv.ID, cv.UserID, cv.Title,
		cv.Education, cv.Experience, cv.Skills,
		cv.Languages, cv.Certificates, cv.Projects,
		cv.Avatar, cv.PdfURL, cv.IsDefault,
		cv.CreatedAt, cv.UpdatedAt,
	)
	return err
}

func (r *cvRepo) GetByID(ctx context.Context, id string) (*domain.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1`
	var cv domain.CV
	if err := scanCV(r.db.QueryRow(ctx, query, id), &cv); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &cv, nil
}

func (r *cvRepo) FetchByUser(ctx context.Context, userID string) ([]domain.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cvs []domain.CV
	for rows.Next() {
		var cv domain.CV
		if err := scanCV(rows, &cv); err != nil {
			return nil, err
		}
		cvs = append(cvs, cv)
	}
	return cvs, rows.Err()
}

func (r *cvRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cvs WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}

func (r *cvRepo) Update(ctx context.Context, cv *domain.CV) error {
	query := `UPDATE cvs SET
		title = $2,
		education = $3,
		experience = $4,
		skills = $5,
		languages = $6,
		certificates = $7,
		projects = $8,
		avatar = $9,
		pdf_url = $10,
		updated_at = $11
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		cv.ID, cv.Title,
		cv.Education, cv.Experience, cv.Skills,
		cv.Languages, cv.Certificates, cv.Projects,
		cv.Avatar, cv.PdfURL, cv.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetDefault performs the clear-then-set as one transaction so the
// single-default invariant never breaks mid-flight.
func (r *cvRepo) SetDefault(ctx context.Context, userID, cvID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE cvs SET is_default = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_default = TRUE`,
		userID,
	); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE cvs SET is_default = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`,
		cvID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

// Delete removes the CV; when the default is deleted and other CVs
// remain, the most recently created one is promoted inside the same
// transaction.
func (r *cvRepo) Delete(ctx context.Context, cv *domain.CV) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, cv.ID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if cv.IsDefault {
		promote := `
			UPDATE cvs SET is_default = TRUE, updated_at = NOW()
			WHERE id = (
				SELECT id FROM cvs WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1
			)`
		if _, err := tx.Exec(ctx, promote, cv.UserID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
