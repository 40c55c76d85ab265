package v1

import (
	"encoding/json"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(protected *gin.RouterGroup, cvUC domain.CVUsecase) {
	handler := &CVHandler{cvUC: cvUC}

	cvs := protected.Group("/cvs")
	{
		cvs.GET("", handler.ListMine)
		cvs.POST("", handler.Create)
		cvs.GET("/:id", handler.GetDetails)
		cvs.PUT("/:id", handler.Update)
		cvs.PATCH("/:id/default", handler.SetDefault)
		cvs.DELETE("/:id", handler.Delete)
	}
}

type CVRequest struct {
	Title        string          `json:"title" binding:"required"`
	Education    json.RawMessage `json:"education"`
	Experience   json.RawMessage `json:"experience"`
	Skills       json.RawMessage `json:"skills"`
	Languages    json.RawMessage `json:"languages"`
	Certificates json.RawMessage `json:"certificates"`
	Projects     json.RawMessage `json:"projects"`
	Avatar       *string         `json:"avatar"`
	PdfURL       *string         `json:"pdf_url"`
}

func (r *CVRequest) toDomain() *domain.CV {
	return &domain.CV{
		Title:        r.Title,
		Education:    r.Education,
		Experience:   r.Experience,
		Skills:       r.Skills,
		Languages:    r.Languages,
		Certificates: r.Certificates,
		Projects:     r.Projects,
		Avatar:       r.Avatar,
		PdfURL:       r.PdfURL,
	}
}

// Create godoc
// @Summary      Create a CV
// @Description  Create a CV; the user's first CV becomes the default
// @Tags         cvs
// @Accept       json
// @Produce      json
// @Param        cv  body      CVRequest  true  "CV JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /cvs [post]
// @Security     BearerAuth
func (h *CVHandler) Create(c *gin.Context) {
	var req CVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	cv := req.toDomain()
	if err := h.cvUC.Create(c.Request.Context(), c.GetString(string(domain.KeyUserID)), cv); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "CV created", cv)
}

// ListMine godoc
// @Summary      List own CVs
// @Tags         cvs
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /cvs [get]
// @Security     BearerAuth
func (h *CVHandler) ListMine(c *gin.Context) {
	cvs, err := h.cvUC.GetMine(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My CVs", cvs)
}

// GetDetails godoc
// @Summary      Get CV details
// @Description  Owners always see their CVs; recruiters and admins may view any
// @Tags         cvs
// @Produce      json
// @Param        id   path      string  true  "CV ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [get]
// @Security     BearerAuth
func (h *CVHandler) GetDetails(c *gin.Context) {
	cv, err := h.cvUC.Get(c.Request.Context(), requester(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV details", cv)
}

// Update godoc
// @Summary      Update a CV
// @Tags         cvs
// @Accept       json
// @Produce      json
// @Param        id  path      string     true  "CV ID"
// @Param        cv  body      CVRequest  true  "CV JSON"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [put]
// @Security     BearerAuth
func (h *CVHandler) Update(c *gin.Context) {
	var req CVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	cv := req.toDomain()
	cv.ID = c.Param("id")

	updated, err := h.cvUC.Update(c.Request.Context(), c.GetString(string(domain.KeyUserID)), cv)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV updated", updated)
}

// SetDefault godoc
// @Summary      Set default CV
// @Description  Make this CV the default; the previous default is cleared
// @Tags         cvs
// @Produce      json
// @Param        id   path      string  true  "CV ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id}/default [patch]
// @Security     BearerAuth
func (h *CVHandler) SetDefault(c *gin.Context) {
	cv, err := h.cvUC.SetDefault(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Default CV updated", cv)
}

// Delete godoc
// @Summary      Delete a CV
// @Description  Delete a CV; if it was the default, the newest remaining CV takes over
// @Tags         cvs
// @Produce      json
// @Param        id   path      string  true  "CV ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /cvs/{id} [delete]
// @Security     BearerAuth
func (h *CVHandler) Delete(c *gin.Context) {
	if err := h.cvUC.Delete(c.Request.Context(), c.GetString(string(domain.KeyUserID)), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "CV deleted", nil)
}
