package domain

import (
	"context"
	"time"
)

// Category status values
const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

// Category is a node in the self-referential job-category tree.
// Level is 1 for roots and parent.Level+1 otherwise; TotalJobs is a
// denormalized counter maintained alongside job writes.
type Category struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	Slug            string    `json:"slug"`
	Icon            *string   `json:"icon,omitempty"`
	Status          string    `json:"status"`
	ParentID        *string   `json:"parent_id,omitempty"`
	Level           int       `json:"level"`
	Order           int       `json:"order"`
	TotalJobs       int64     `json:"total_jobs"`
	MetaTitle       *string   `json:"meta_title,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
	Keywords        []string  `json:"keywords,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CategoryNode is a category with its children attached, as returned
// by the tree endpoint.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// CategoryRef is a lightweight reference used when embedding a parent
// or child summary in a detail response.
type CategoryRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TotalJobs int64  `json:"total_jobs"`
}

// CategoryDetail is a category with its parent and direct children.
type CategoryDetail struct {
	Category
	Parent   *CategoryRef  `json:"parent,omitempty"`
	Children []CategoryRef `json:"children"`
}

// CategoryFilter narrows flat category listings.
type CategoryFilter struct {
	Status   string
	Search   string
	ParentID string
}

// CategoryUpdate carries a partial update. Nil fields are left
// untouched; a ParentID pointing at the empty string makes the
// category a root.
type CategoryUpdate struct {
	Name            *string
	Description     *string
	Slug            *string
	Icon            *string
	Status          *string
	Order           *int
	ParentID        *string
	MetaTitle       *string
	MetaDescription *string
	Keywords        []string
}

// CategoryOrderItem is one entry of a bulk reorder request.
type CategoryOrderItem struct {
	ID    string `json:"id" binding:"required"`
	Order int    `json:"order"`
}

// LevelCount is the number of categories at a given tree depth.
type LevelCount struct {
	Level int   `json:"level"`
	Count int64 `json:"count"`
}

// CategoryStats is the aggregate report for the stats endpoint.
type CategoryStats struct {
	TotalCategories   int64            `json:"total_categories"`
	LevelDistribution map[string]int64 `json:"level_distribution"`
	TopCategories     []Category       `json:"top_categories"`
}

type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	FetchRoots(ctx context.Context) ([]Category, error)
	FetchChildren(ctx context.Context, parentIDs []string) ([]Category, error)
	Fetch(ctx context.Context, filter CategoryFilter, limit, offset int) ([]Category, int64, error)
	Update(ctx context.Context, category *Category) error
	// Reparent moves a category under newParentID (nil for root) with
	// the given level and recomputes the level of every descendant in
	// the same transaction.
	Reparent(ctx context.Context, id string, newParentID *string, level int) error
	Delete(ctx context.Context, id string) error
	CountChildren(ctx context.Context, id string) (int64, error)
	// UpdateOrders applies a bulk sibling reorder atomically.
	UpdateOrders(ctx context.Context, items []CategoryOrderItem) error
	Count(ctx context.Context) (int64, error)
	CountByLevel(ctx context.Context) ([]LevelCount, error)
	TopByJobs(ctx context.Context, limit int) ([]Category, error)
}

type CategoryUsecase interface {
	GetTree(ctx context.Context) ([]*CategoryNode, error)
	List(ctx context.Context, filter CategoryFilter, page, limit int) ([]Category, int64, error)
	Get(ctx context.Context, id string) (*CategoryDetail, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, id string, update CategoryUpdate) (*Category, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, items []CategoryOrderItem) error
	Stats(ctx context.Context) (*CategoryStats, error)
}
