package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const categoryColumns = `id, name, description, slug, icon, status, parent_id, level, "order", total_jobs, meta_title, meta_description, keywords, created_at, updated_at`

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepo{db: db}
}

func scanCategory(row pgx.Row, c *domain.Category) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Slug, &c.Icon, &c.Status,
		&c.ParentID, &c.Level, &c.Order, &c.TotalJobs,
		&c.MetaTitle, &c.MetaDescription, &c.Keywords,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func collectCategories(rows pgx.Rows) ([]domain.Category, error) {
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO job_categories (id, name, description, slug, icon, status, parent_id, level, "order", total_jobs, meta_title, meta_description, keywords, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Slug, c.Icon, c.Status,
		c.ParentID, c.Level, c.Order, c.TotalJobs,
		c.MetaTitle, c.MetaDescription, c.Keywords,
		c.CreatedAt, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM job_categories WHERE id = $1`
	var c domain.Category
	if err := scanCategory(r.db.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FetchRoots(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM job_categories WHERE parent_id IS NULL ORDER BY "order" ASC, name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

func (r *categoryRepo) FetchChildren(ctx context.Context, parentIDs []string) ([]domain.Category, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + categoryColumns + ` FROM job_categories WHERE parent_id = ANY($1) ORDER BY "order" ASC, name ASC`
	rows, err := r.db.Query(ctx, query, parentIDs)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}

func (r *categoryRepo) Fetch(ctx context.Context, filter domain.CategoryFilter, limit, offset int) ([]domain.Category, int64, error) {
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
		addCond("status = $%d", filter.Status)
	}
	if filter.Search != "" {
		addCond("(name ILIKE $%d OR description ILIKE $%[1]d)", "%"+filter.Search+"%")
	}
	if filter.ParentID != "" {
		addCond("parent_id = $%d", filter.ParentID)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_categories`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+categoryColumns+` FROM job_categories%s ORDER BY "order" ASC, name ASC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE job_categories SET
		name = $2,
		description = $3,
		slug = $4,
		icon = $5,
		status = $6,
		"order" = $7,
		meta_title = $8,
		meta_description = $9,
		keywords = $10,
		updated_at = $11
	WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Slug, c.Icon, c.Status, c.Order,
		c.MetaTitle, c.MetaDescription, c.Keywords, c.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reparent moves the category and rewrites the level of its whole
// subtree in one transaction, keeping child.level == parent.level + 1
// everywhere.
func (r *categoryRepo) Reparent(ctx context.Context, id string, newParentID *string, level int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE job_categories SET parent_id = $2, level = $3, updated_at = NOW() WHERE id = $1`,
		id, newParentID, level,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	cascade := `
		WITH RECURSIVE subtree AS (
			SELECT id, level FROM job_categories WHERE id = $1
			UNION ALL
			SELECT c.id, subtree.level + 1
			FROM job_categories c
			JOIN subtree ON c.parent_id = subtree.id
		)
		UPDATE job_categories jc
		SET level = subtree.level
		FROM subtree
		WHERE jc.id = subtree.id AND jc.id <> $1`
	if _, err := tx.Exec(ctx, cascade, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM job_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_categories WHERE parent_id = $1`, id).Scan(&count)
	return count, err
}

func (r *categoryRepo) UpdateOrders(ctx context.Context, items []domain.CategoryOrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range items {
		result, err := tx.Exec(ctx,
			`UPDATE job_categories SET "order" = $2, updated_at = NOW() WHERE id = $1`,
			item.ID, item.Order,
		)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *categoryRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_categories`).Scan(&count)
	return count, err
}

func (r *categoryRepo) CountByLevel(ctx context.Context) ([]domain.LevelCount, error) {
	rows, err := r.db.Query(ctx, `SELECT level, COUNT(*) FROM job_categories GROUP BY level ORDER BY level ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.LevelCount
	for rows.Next() {
		var lc domain.LevelCount
		if err := rows.Scan(&lc.Level, &lc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, lc)
	}
	return counts, rows.Err()
}

func (r *categoryRepo) TopByJobs(ctx context.Context, limit int) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM job_categories ORDER BY total_jobs DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectCategories(rows)
}
