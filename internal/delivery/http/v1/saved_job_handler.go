package v1

import (
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SavedJobHandler struct {
	savedJobUC domain.SavedJobUsecase
}

func NewSavedJobHandler(protected *gin.RouterGroup, savedJobUC domain.SavedJobUsecase) {
	handler := &SavedJobHandler{savedJobUC: savedJobUC}

	savedJobs := protected.Group("/saved-jobs")
	{
		savedJobs.GET("", handler.List)
		savedJobs.POST("/:jobId", handler.Save)
		savedJobs.DELETE("/:jobId", handler.Unsave)
	}
}

func requireCandidate(c *gin.Context) bool {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can manage saved jobs"))
		return false
	}
	return true
}

// Save godoc
// @Summary      Save a job
// @Description  Bookmark a job for the authenticated user
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      201  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /saved-jobs/{jobId} [post]
// @Security     BearerAuth
func (h *SavedJobHandler) Save(c *gin.Context) {
	if !requireCandidate(c) {
		return
	}

	saved, err := h.savedJobUC.Save(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job saved", saved)
}

// Unsave godoc
// @Summary      Unsave a job
// @Description  Remove a bookmark
// @Tags         saved-jobs
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /saved-jobs/{jobId} [delete]
// @Security     BearerAuth
func (h *SavedJobHandler) Unsave(c *gin.Context) {
	if !requireCandidate(c) {
		return
	}

	if err := h.savedJobUC.Unsave(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("jobId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job unsaved", nil)
}

// List godoc
// @Summary      List saved jobs
// @Description  List the authenticated user's bookmarks with job details
// @Tags         saved-jobs
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /saved-jobs [get]
// @Security     BearerAuth
func (h *SavedJobHandler) List(c *gin.Context) {
	if !requireCandidate(c) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	saved, total, err := h.savedJobUC.List(c.Request.Context(), c.GetString(string(domain.KeyUserID)), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Saved jobs", saved, total, page, limit)
}
