package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/ports"
)

// IndustryHandler serves /industries and its /categories alias.
type IndustryHandler struct {
	service ports.IndustryService
}

func NewIndustryHandler(service ports.IndustryService) *IndustryHandler {
	return &IndustryHandler{service: service}
}

type industryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

// List returns paginated industries, newest first.
//
// @Summary      List industries
// @Tags         industries
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  map[string]any
// @Router       /industries [get]
func (h *IndustryHandler) List(c echo.Context) error {
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

// @Summary      Get industry
// @Tags         industries
// @Produce      json
// @Param        id   path      string  true  "Industry ID"
// @Success      200  {object}  domain.Industry
// @Failure      404  {object}  map[string]string
// @Router       /industries/{id} [get]
func (h *IndustryHandler) Get(c echo.Context) error {
	body, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// @Summary      Create industry
// @Tags         industries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      industryRequest  true  "Industry"
// @Success      201   {object}  domain.Industry
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /industries [post]
func (h *IndustryHandler) Create(c echo.Context) error {
	var req industryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ind, err := h.service.Create(c.Request().Context(), principalFrom(c), ports.IndustryInput{Name: req.Name, Description: req.Description})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ind)
}

// @Summary      Update industry
// @Tags         industries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Industry ID"
// @Param        body  body      industryRequest  true  "Industry fields"
// @Success      200   {object}  domain.Industry
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /industries/{id} [put]
// @Router       /industries/{id} [patch]
func (h *IndustryHandler) Update(c echo.Context) error {
	var req industryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ind, err := h.service.Update(c.Request().Context(), principalFrom(c), c.Param("id"),
		ports.IndustryInput{Name: req.Name, Description: req.Description}, isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ind)
}

// @Summary      Delete industry
// @Tags         industries
// @Security     BearerAuth
// @Param        id   path  string  true  "Industry ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /industries/{id} [delete]
func (h *IndustryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principalFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Jobs lists every job filed under an industry.
//
// @Summary      Industry jobs
// @Tags         industries
// @Produce      json
// @Param        id   path      string  true  "Industry ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]string
// @Router       /industries/{id}/jobs [get]
func (h *IndustryHandler) Jobs(c echo.Context) error {
	body, err := h.service.Jobs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}
