package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(public *gin.RouterGroup, protected *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}

	publicCategories := public.Group("/job-categories")
	{
		publicCategories.GET("", handler.List)
		publicCategories.GET("/tree", handler.Tree)
		publicCategories.GET("/:id", handler.GetDetails)
	}

	// Admin-only management routes
	adminCategories := protected.Group("/job-categories")
	{
		adminCategories.GET("/stats", handler.Stats)
		adminCategories.POST("", handler.Create)
		adminCategories.PUT("/reorder", handler.Reorder)
		adminCategories.PUT("/:id", handler.Update)
		adminCategories.DELETE("/:id", handler.Delete)
	}
}

type CreateCategoryRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Slug            string   `json:"slug"`
	Icon            string   `json:"icon"`
	Status          string   `json:"status" binding:"omitempty,oneof=active inactive"`
	ParentID        *string  `json:"parent_id"`
	Order           int      `json:"order"`
	MetaTitle       string   `json:"meta_title"`
	MetaDescription string   `json:"meta_description"`
	Keywords        []string `json:"keywords"`
}

type UpdateCategoryRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Slug            *string  `json:"slug"`
	Icon            *string  `json:"icon"`
	Status          *string  `json:"status" binding:"omitempty,oneof=active inactive"`
	Order           *int     `json:"order"`
	ParentID        *string  `json:"parent_id"`
	MetaTitle       *string  `json:"meta_title"`
	MetaDescription *string  `json:"meta_description"`
	Keywords        []string `json:"keywords"`
}

type ReorderRequest struct {
	Categories []domain.CategoryOrderItem `json:"categories" binding:"required,min=1,dive"`
}

func requireAdmin(c *gin.Context) bool {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only admins can manage job categories"))
		return false
	}
	return true
}

// Tree godoc
// @Summary      Category tree
// @Description  Get active job categories as a tree with nested children
// @Tags         job-categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job-categories/tree [get]
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categoryUC.GetTree(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category tree", tree)
}

// List godoc
// @Summary      List categories
// @Description  Flat category list with optional status, search and parent filters
// @Tags         job-categories
// @Produce      json
// @Param        status     query  string  false  "active or inactive"
// @Param        search     query  string  false  "Name or description search"
// @Param        parent_id  query  string  false  "Only children of this category"
// @Param        page       query  int     false  "Page number"
// @Param        limit      query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /job-categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := domain.CategoryFilter{
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		ParentID: c.Query("parent_id"),
	}

	categories, total, err := h.categoryUC.List(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Category list", categories, total, page, limit)
}

// GetDetails godoc
// @Summary      Get category details
// @Description  Get a category with its parent and direct children
// @Tags         job-categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-categories/{id} [get]
func (h *CategoryHandler) GetDetails(c *gin.Context) {
	detail, err := h.categoryUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category details", detail)
}

// Create godoc
// @Summary      Create category
// @Description  Create a job category (admin only)
// @Tags         job-categories
// @Accept       json
// @Produce      json
// @Param        category  body      CreateCategoryRequest  true  "Category JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /job-categories [post]
// @Security     BearerAuth
func (h *CategoryHandler) Create(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	category := &domain.Category{
		Name:            req.Name,
		Description:     toPtr(req.Description),
		Slug:            req.Slug,
		Icon:            toPtr(req.Icon),
		Status:          req.Status,
		ParentID:        req.ParentID,
		Order:           req.Order,
		MetaTitle:       toPtr(req.MetaTitle),
		MetaDescription: toPtr(req.MetaDescription),
		Keywords:        req.Keywords,
	}

	if err := h.categoryUC.Create(c.Request.Context(), category); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created", category)
}

// Update godoc
// @Summary      Update category
// @Description  Partially update a category; parent changes move the whole subtree (admin only)
// @Tags         job-categories
// @Accept       json
// @Produce      json
// @Param        id        path      string                 true  "Category ID"
// @Param        category  body      UpdateCategoryRequest  true  "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /job-categories/{id} [put]
// @Security     BearerAuth
func (h *CategoryHandler) Update(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	update := domain.CategoryUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Slug:            req.Slug,
		Icon:            req.Icon,
		Status:          req.Status,
		Order:           req.Order,
		ParentID:        req.ParentID,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
	}

	category, err := h.categoryUC.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category updated", category)
}

// Delete godoc
// @Summary      Delete category
// @Description  Delete a childless category (admin only)
// @Tags         job-categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /job-categories/{id} [delete]
// @Security     BearerAuth
func (h *CategoryHandler) Delete(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	if err := h.categoryUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category deleted", nil)
}

// Reorder godoc
// @Summary      Reorder categories
// @Description  Apply new display orders to a set of categories atomically (admin only)
// @Tags         job-categories
// @Accept       json
// @Produce      json
// @Param        orders  body      ReorderRequest  true  "Categories with new orders"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-categories/reorder [put]
// @Security     BearerAuth
func (h *CategoryHandler) Reorder(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.categoryUC.Reorder(c.Request.Context(), req.Categories); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories reordered", nil)
}

// Stats godoc
// @Summary      Category statistics
// @Description  Totals, level distribution and top categories by job count (admin only)
// @Tags         job-categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job-categories/stats [get]
// @Security     BearerAuth
func (h *CategoryHandler) Stats(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	stats, err := h.categoryUC.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category statistics", stats)
}
