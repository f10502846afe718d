package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type jobRequest struct {
	Title            *string  `json:"title" validate:"omitempty,max=255"`
	Company          *string  `json:"company" validate:"omitempty,max=255"`
	Location         *string  `json:"location" validate:"omitempty,max=255"`
	Wage             *int     `json:"wage" validate:"omitempty,gte=0"`
	Types            []string `json:"type"`
	ExperienceLevel  *string  `json:"experience_level"`
	Description      *string  `json:"description"`
	RequiredSkills   []string `json:"required_skills"`
	Responsibilities []string `json:"responsibilities"`
	IndustryID       *string  `json:"industry_id"`
	IsActive         *bool    `json:"is_active"`
}

func (r jobRequest) input() ports.JobInput {
	return ports.JobInput{
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		Wage:             r.Wage,
		Types:            r.Types,
		ExperienceLevel:  r.ExperienceLevel,
		Description:      r.Description,
		RequiredSkills:   r.RequiredSkills,
		Responsibilities: r.Responsibilities,
		IndustryID:       r.IndustryID,
		IsActive:         r.IsActive,
	}
}

// List returns paginated jobs.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        search     query     string  false  "Substring over title, type, company, location and industry"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  map[string]any
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	body, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// Get returns one job.
//
// @Summary      Get job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	body, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// Create posts a new job owned by the caller.
//
// @Summary      Create job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      jobRequest  true  "Job"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req jobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.service.Create(c.Request().Context(), principalFrom(c), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// Update replaces (PUT) or patches (PATCH) a job.
//
// @Summary      Update job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Job ID"
// @Param        body  body      jobRequest  true  "Job fields"
// @Success      200   {object}  domain.Job
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /jobs/{id} [put]
// @Router       /jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	var req jobRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	job, err := h.service.Update(c.Request().Context(), principalFrom(c), c.Param("id"), req.input(), isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Delete removes a job and its applications.
//
// @Summary      Delete job
// @Tags         jobs
// @Security     BearerAuth
// @Param        id   path  string  true  "Job ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principalFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Categorized groups jobs by an axis and paginates every group.
//
// @Summary      Categorized jobs
// @Tags         jobs
// @Produce      json
// @Param        category   query     string  true   "Grouping axis: industry, location or type"
// @Param        filter     query     string  false  "Return only this group"
// @Param        search     query     string  false  "Substring filter applied before grouping"
// @Param        page_size  query     int     false  "Items per group"
// @Param        page       query     int     false  "Shared page number for every group"
// @Success      200        {object}  map[string]any
// @Failure      400        {object}  map[string]string
// @Router       /jobs/categorized-jobs [get]
func (h *JobHandler) Categorized(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	body, err := h.service.Categorized(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// UsedCategories lists the distinct values in use per axis with job counts.
//
// @Summary      Used categories
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /jobs/used-categories [get]
func (h *JobHandler) UsedCategories(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	body, err := h.service.UsedCategories(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// Applicants lists the applications received by a job.
//
// @Summary      Job applicants
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id}/applicants [get]
func (h *JobHandler) Applicants(c echo.Context) error {
	body, err := h.service.Applicants(c.Request().Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}
