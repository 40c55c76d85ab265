package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	protected.POST("/jobs/:id/apply", handler.Apply)
	protected.GET("/jobs/:id/applications", handler.ListByJob)

	applications := protected.Group("/applications")
	{
		applications.GET("/me", handler.ListMine)
		applications.PATCH("/:id/status", handler.UpdateStatus)
		applications.DELETE("/:id", handler.Withdraw)
	}
}

type ApplyRequest struct {
	CvURL       string `json:"cv_url" binding:"required,url"`
	CoverLetter string `json:"cover_letter"`
}

type ReviewApplicationRequest struct {
	Status         string  `json:"status" binding:"required,appstatus"`
	RecruiterNotes *string `json:"recruiter_notes"`
	InterviewDate  *string `json:"interview_date"`
}

// Apply godoc
// @Summary      Apply for a job
// @Description  Submit an application; one per job per candidate
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      string        true  "Job ID"
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	if c.GetString(string(domain.KeyUserRole)) != domain.RoleCandidate {
		c.Error(apperror.Forbidden("Only candidates can apply for jobs"))
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), requester(c), c.Param("id"), req.CvURL, req.CoverLetter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List own applications
// @Description  List the authenticated candidate's applications with job titles
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications/me [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.applicationUC.GetMine(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My applications", apps)
}

// ListByJob godoc
// @Summary      List applicants for a job
// @Description  List applications for a job owned by the caller, optionally by status
// @Tags         applications
// @Produce      json
// @Param        id      path   string  true   "Job ID"
// @Param        status  query  string  false  "PENDING, REVIEWING, ACCEPTED or REJECTED"
// @Param        page    query  int     false  "Page number"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	apps, total, err := h.applicationUC.ListByJob(c.Request.Context(), requester(c), c.Param("id"), c.Query("status"), page, limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Job applications", apps, total, page, limit)
}

// UpdateStatus godoc
// @Summary      Review an application
// @Description  Change application status with optional notes and interview date
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      string                    true  "Application ID"
// @Param        review  body      ReviewApplicationRequest  true  "Review JSON"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	review := domain.ApplicationReview{
		Status:         req.Status,
		RecruiterNotes: req.RecruiterNotes,
	}
	if req.InterviewDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.InterviewDate)
		if err != nil {
			c.Error(apperror.BadRequest("interview_date must be an RFC3339 timestamp"))
			return
		}
		review.InterviewDate = &parsed
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), requester(c), c.Param("id"), review)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated", app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Delete the caller's own application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	if err := h.applicationUC.Delete(c.Request.Context(), requester(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
