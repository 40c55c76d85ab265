package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/slug"

	"github.com/google/uuid"
)

// treeChildDepth caps eager loading at two levels of children below
// the roots; deeper levels require separate lookups.
const treeChildDepth = 2

// maxAncestorWalk bounds the walk-to-root cycle check so a corrupted
// store cannot loop the handler.
const maxAncestorWalk = 64

type categoryUsecase struct {
	categoryRepo domain.CategoryRepository
}

func NewCategoryUsecase(categoryRepo domain.CategoryRepository) domain.CategoryUsecase {
	return &categoryUsecase{categoryRepo: categoryRepo}
}

// GetTree returns root categories with children attached, ordered by
// (order, name) at every level.
func (u *categoryUsecase) GetTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	roots, err := u.categoryRepo.FetchRoots(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	nodes := make([]*domain.CategoryNode, 0, len(roots))
	index := make(map[string]*domain.CategoryNode, len(roots))
	frontier := make([]string, 0, len(roots))
	for i := range roots {
		node := &domain.CategoryNode{Category: roots[i], Children: []*domain.CategoryNode{}}
		nodes = append(nodes, node)
		index[node.ID] = node
		frontier = append(frontier, node.ID)
	}

	for depth := 0; depth < treeChildDepth && len(frontier) > 0; depth++ {
		children, err := u.categoryRepo.FetchChildren(ctx, frontier)
		if err != nil {
			return nil, apperror.Internal(err)
		}

		frontier = frontier[:0]
		for i := range children {
			node := &domain.CategoryNode{Category: children[i], Children: []*domain.CategoryNode{}}
			parent := index[*node.ParentID]
			parent.Children = append(parent.Children, node)
			index[node.ID] = node
			frontier = append(frontier, node.ID)
		}
	}

	return nodes, nil
}

func (u *categoryUsecase) List(ctx context.Context, filter domain.CategoryFilter, page, limit int) ([]domain.Category, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	return u.categoryRepo.Fetch(ctx, filter, limit, offset)
}

func (u *categoryUsecase) Get(ctx context.Context, id string) (*domain.CategoryDetail, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Category not found")
	}

	detail := &domain.CategoryDetail{Category: *category, Children: []domain.CategoryRef{}}

	if category.ParentID != nil {
		if parent, err := u.categoryRepo.GetByID(ctx, *category.ParentID); err == nil {
			detail.Parent = &domain.CategoryRef{ID: parent.ID, Name: parent.Name, TotalJobs: parent.TotalJobs}
		}
	}

	children, err := u.categoryRepo.FetchChildren(ctx, []string{id})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, child := range children {
		detail.Children = append(detail.Children, domain.CategoryRef{ID: child.ID, Name: child.Name, TotalJobs: child.TotalJobs})
	}

	return detail, nil
}

func (u *categoryUsecase) Create(ctx context.Context, category *domain.Category) error {
	if category.Name == "" {
		return apperror.BadRequest("Name is required")
	}

	category.Level = 1
	if category.ParentID != nil {
		parent, err := u.categoryRepo.GetByID(ctx, *category.ParentID)
		if err != nil {
			return apperror.NotFound("Parent category not found")
		}
		category.Level = parent.Level + 1
	}

	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	if category.Slug == "" {
		return apperror.BadRequest("Name must contain at least one alphanumeric character")
	}

	if category.Status == "" {
		category.Status = domain.CategoryStatusActive
	}

	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()

	if err := u.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("Category name or slug already in use")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *categoryUsecase) Update(ctx context.Context, id string, update domain.CategoryUpdate) (*domain.Category, error) {
	category, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NotFound("Category not found")
	}

	nameChanged := false
	if update.Name != nil && *update.Name != category.Name {
		if *update.Name == "" {
			return nil, apperror.BadRequest("Name cannot be empty")
		}
		category.Name = *update.Name
		nameChanged = true
	}
	if update.Description != nil {
		category.Description = update.Description
	}
	if update.Icon != nil {
		category.Icon = update.Icon
	}
	if update.Status != nil {
		if *update.Status != domain.CategoryStatusActive && *update.Status != domain.CategoryStatusInactive {
			return nil, apperror.BadRequest("Status must be active or inactive")
		}
		category.Status = *update.Status
	}
	if update.Order != nil {
		category.Order = *update.Order
	}
	if update.MetaTitle != nil {
		category.MetaTitle = update.MetaTitle
	}
	if update.MetaDescription != nil {
		category.MetaDescription = update.MetaDescription
	}
	if update.Keywords != nil {
		category.Keywords = update.Keywords
	}

	// Slug follows the name unless an explicit slug arrives with the
	// same update.
	if update.Slug != nil && *update.Slug != "" {
		category.Slug = slug.Make(*update.Slug)
	} else if nameChanged {
		category.Slug = slug.Make(category.Name)
	}

	if update.ParentID != nil {
		if err := u.reparent(ctx, category, *update.ParentID); err != nil {
			return nil, err
		}
	}

	category.UpdatedAt = time.Now()
	if err := u.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Category name or slug already in use")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Category not found")
		}
		return nil, apperror.Internal(err)
	}

	return u.categoryRepo.GetByID(ctx, id)
}

// reparent validates the new parent (existence, no self-loop, no
// cycle through the ancestor chain) and moves the subtree.
func (u *categoryUsecase) reparent(ctx context.Context, category *domain.Category, newParentID string) error {
	if newParentID == "" {
		if category.ParentID == nil {
			return nil
		}
		category.ParentID = nil
		category.Level = 1
		return u.categoryRepo.Reparent(ctx, category.ID, nil, 1)
	}

	if category.ParentID != nil && *category.ParentID == newParentID {
		return nil
	}
	if newParentID == category.ID {
		return apperror.BadRequest("Category cannot be its own parent")
	}

	parent, err := u.categoryRepo.GetByID(ctx, newParentID)
	if err != nil {
		return apperror.NotFound("Parent category not found")
	}

	// Walk to the root: the new parent must not descend from the
	// category being moved.
	ancestor := parent
	for i := 0; i < maxAncestorWalk; i++ {
		if ancestor.ID == category.ID {
			return apperror.Conflict("Moving the category under its own descendant would create a cycle")
		}
		if ancestor.ParentID == nil {
			break
		}
		ancestor, err = u.categoryRepo.GetByID(ctx, *ancestor.ParentID)
		if err != nil {
			return apperror.Internal(err)
		}
	}

	category.ParentID = &parent.ID
	category.Level = parent.Level + 1
	return u.categoryRepo.Reparent(ctx, category.ID, &parent.ID, category.Level)
}

func (u *categoryUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.categoryRepo.GetByID(ctx, id); err != nil {
		return apperror.NotFound("Category not found")
	}

	children, err := u.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if children > 0 {
		return apperror.Conflict("Cannot delete category with subcategories. Please delete subcategories first.")
	}

	if err := u.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *categoryUsecase) Reorder(ctx context.Context, items []domain.CategoryOrderItem) error {
	if len(items) == 0 {
		return apperror.BadRequest("Please provide an array of categories with their new orders")
	}

	if err := u.categoryRepo.UpdateOrders(ctx, items); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Category not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (u *categoryUsecase) Stats(ctx context.Context) (*domain.CategoryStats, error) {
	total, err := u.categoryRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	levels, err := u.categoryRepo.CountByLevel(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	distribution := make(map[string]int64, len(levels))
	for _, lc := range levels {
		distribution[fmt.Sprintf("Level %d", lc.Level)] = lc.Count
	}

	top, err := u.categoryRepo.TopByJobs(ctx, 10)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.CategoryStats{
		TotalCategories:   total,
		LevelDistribution: distribution,
		TopCategories:     top,
	}, nil
}
