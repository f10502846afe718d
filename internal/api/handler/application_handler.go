package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

type applicationRequest struct {
	Job         string `json:"job"`
	ResumeLink  string `json:"resume_link" validate:"omitempty,url"`
	CoverLetter string `json:"cover_letter"`
}

// List returns the applications visible to the caller.
//
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        search     query     string  false  "Substring over job title, company, industry and status"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  map[string]any
// @Failure      401        {object}  map[string]string
// @Router       /applications [get]
func (h *ApplicationHandler) List(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), principalFrom(c), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// @Summary      Get application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  domain.ApplicationView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Create submits an application for the caller.
//
// @Summary      Apply for a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applicationRequest  true  "Application"
// @Success      201   {object}  domain.Application
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c echo.Context) error {
	var req applicationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	app, err := h.service.Create(c.Request().Context(), principalFrom(c), ports.ApplicationInput{
		JobID:       req.Job,
		ResumeLink:  req.ResumeLink,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// Update changes the status of an application. The body must contain only
// the status field.
//
// @Summary      Update application status
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Application ID"
// @Param        body  body      map[string]string  true  "{\"status\": \"accepted\"}"
// @Success      200   {object}  domain.ApplicationView
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /applications/{id} [put]
// @Router       /applications/{id} [patch]
func (h *ApplicationHandler) Update(c echo.Context) error {
	payload := map[string]json.RawMessage{}
	if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	view, err := h.service.Update(c.Request().Context(), principalFrom(c), c.Param("id"), payload, isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// @Summary      Delete application
// @Tags         applications
// @Security     BearerAuth
// @Param        id   path  string  true  "Application ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principalFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
