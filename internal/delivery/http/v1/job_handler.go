package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - search only sees active jobs
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.Search)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - recruiter or admin
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.PATCH("/:id/status", handler.UpdateStatus)
		protectedJobs.DELETE("/:id", handler.Delete)
	}

	recruiters := protected.Group("/recruiters")
	{
		recruiters.GET("/jobs", handler.ListMine)
	}
}

type JobRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Requirements    string   `json:"requirements"`
	SalaryMin       float64  `json:"salary_min" binding:"required,gt=0"`
	SalaryMax       float64  `json:"salary_max" binding:"required,gt=0,gtefield=SalaryMin"`
	Location        string   `json:"location" binding:"required"`
	EmploymentType  string   `json:"employment_type" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	ExperienceLevel string   `json:"experience_level"`
	Skills          []string `json:"skills"`
	Deadline        string   `json:"deadline" binding:"required"`
	Status          string   `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE CLOSED"`
	CategoryID      string   `json:"category_id" binding:"required"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,jobstatus"`
}

func (r *JobRequest) toDomain() (*domain.Job, error) {
	deadline, err := time.Parse(time.RFC3339, r.Deadline)
	if err != nil {
		// Accept date-only deadlines too
		deadline, err = time.Parse("2006-01-02", r.Deadline)
		if err != nil {
			return nil, apperror.BadRequest("Deadline must be an RFC3339 timestamp or YYYY-MM-DD date")
		}
	}

	return &domain.Job{
		Title:           r.Title,
		Description:     r.Description,
		Requirements:    r.Requirements,
		SalaryMin:       r.SalaryMin,
		SalaryMax:       r.SalaryMax,
		Location:        r.Location,
		EmploymentType:  r.EmploymentType,
		ExperienceLevel: r.ExperienceLevel,
		Skills:          r.Skills,
		Deadline:        deadline,
		Status:          r.Status,
		CategoryID:      r.CategoryID,
	}, nil
}

func requireRecruiter(c *gin.Context) bool {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleRecruiter && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only recruiters or admins can manage jobs"))
		return false
	}
	return true
}

// Search godoc
// @Summary      Search jobs
// @Description  Search active jobs; all supplied filters are combined
// @Tags         jobs
// @Produce      json
// @Param        search            query  string  false  "Title or description search"
// @Param        category_id       query  string  false  "Category filter"
// @Param        employment_type   query  string  false  "FULL_TIME, PART_TIME, CONTRACT or INTERNSHIP"
// @Param        experience_level  query  string  false  "Experience level"
// @Param        location          query  string  false  "Location substring"
// @Param        min_salary        query  number  false  "Minimum salary"
// @Param        max_salary        query  number  false  "Maximum salary"
// @Param        skills            query  string  false  "Comma-separated skills, all required"
// @Param        page              query  int     false  "Page number"
// @Param        limit             query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) Search(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := domain.JobFilter{
		Search:          c.Query("search"),
		CategoryID:      c.Query("category_id"),
		EmploymentType:  c.Query("employment_type"),
		ExperienceLevel: c.Query("experience_level"),
		Location:        c.Query("location"),
		// Public search never exposes drafts or closed jobs.
		Status: domain.JobStatusActive,
	}
	if v := c.Query("min_salary"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinSalary = &f
		}
	}
	if v := c.Query("max_salary"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxSalary = &f
		}
	}
	if v := c.Query("skills"); v != "" {
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Skills = append(filter.Skills, s)
			}
		}
	}

	jobs, total, err := h.jobUC.Search(c.Request.Context(), filter, page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Job list", jobs, total, page, limit)
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a job posting (recruiter or admin only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	if !requireRecruiter(c) {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.Create(c.Request.Context(), requester(c), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update job
// @Description  Replace a job's fields; only the owning recruiter or an admin may update
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	if !requireRecruiter(c) {
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}
	job.ID = c.Param("id")

	if err := h.jobUC.Update(c.Request.Context(), requester(c), job); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// UpdateStatus godoc
// @Summary      Change job status
// @Description  Move a job along DRAFT -> ACTIVE -> CLOSED
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      string                  true  "Job ID"
// @Param        status  body      UpdateJobStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	if !requireRecruiter(c) {
		return
	}

	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	job, err := h.jobUC.UpdateStatus(c.Request.Context(), requester(c), c.Param("id"), req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job status updated", job)
}

// Delete godoc
// @Summary      Delete job
// @Description  Delete a job with its applications and bookmarks
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if !requireRecruiter(c) {
		return
	}

	if err := h.jobUC.Delete(c.Request.Context(), requester(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ListMine godoc
// @Summary      List own jobs
// @Description  List the authenticated recruiter's jobs in every status
// @Tags         jobs
// @Produce      json
// @Param        page   query  int  false  "Page number"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /recruiters/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	if !requireRecruiter(c) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	jobs, total, err := h.jobUC.ListByRecruiter(c.Request.Context(), c.GetString(string(domain.KeyUserID)), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Recruiter job list", jobs, total, page, limit)
}
