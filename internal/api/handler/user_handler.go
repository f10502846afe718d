package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/easework/jobboard-api/internal/core/ports"
)

// UserHandler serves accounts and both profile kinds.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type userProfileRequest struct {
	Bio              *string           `json:"bio"`
	PortfolioLinks   map[string]string `json:"portfolio_links" validate:"omitempty,dive,url"`
	Location         *string           `json:"location" validate:"omitempty,max=255"`
	ExperienceLevel  *string           `json:"experience_level"`
	SocialMediaLinks map[string]string `json:"social_media_links" validate:"omitempty,dive,url"`
}

type employerProfileRequest struct {
	CompanyWebsite     *string `json:"company_website" validate:"omitempty,url"`
	CompanyDescription *string `json:"company_description"`
	CompanyLocation    *string `json:"company_location" validate:"omitempty,max=255"`
}

// List returns paginated accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	body, err := h.service.List(c.Request().Context(), principalFrom(c), q)
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// @Summary      Get user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Categorized groups accounts by role.
//
// @Summary      Categorized users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page_size  query     int  false  "Items per group"
// @Success      200        {object}  map[string]any
// @Failure      403        {object}  map[string]string
// @Router       /users/categorized-users [get]
func (h *UserHandler) Categorized(c echo.Context) error {
	q, err := listQuery(c)
	if err != nil {
		return err
	}
	body, err := h.service.Categorized(c.Request().Context(), principalFrom(c), q)
	if err != nil {
		return err
	}
	return rawJSON(c, body)
}

// @Summary      Get applicant profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        user  path      string  true  "User ID"
// @Success      200   {object}  domain.UserProfile
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/profile/{user} [get]
func (h *UserHandler) UserProfile(c echo.Context) error {
	profile, err := h.service.UserProfile(c.Request().Context(), principalFrom(c), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// @Summary      Update applicant profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  path      string              true  "User ID"
// @Param        body  body      userProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.UserProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users/profile/{user} [put]
// @Router       /users/profile/{user} [patch]
func (h *UserHandler) UpdateUserProfile(c echo.Context) error {
	var req userProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.service.UpdateUserProfile(c.Request().Context(), principalFrom(c), c.Param("user"), ports.UserProfileInput{
		Bio:              req.Bio,
		PortfolioLinks:   req.PortfolioLinks,
		Location:         req.Location,
		ExperienceLevel:  req.ExperienceLevel,
		SocialMediaLinks: req.SocialMediaLinks,
	}, isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// @Summary      Delete applicant profile
// @Tags         profiles
// @Security     BearerAuth
// @Param        user  path  string  true  "User ID"
// @Success      204
// @Router       /users/profile/{user} [delete]
func (h *UserHandler) DeleteUserProfile(c echo.Context) error {
	if err := h.service.DeleteUserProfile(c.Request().Context(), principalFrom(c), c.Param("user")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// @Summary      Get employer profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Param        user  path      string  true  "User ID"
// @Success      200   {object}  domain.EmployerProfile
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /employers/profile/{user} [get]
func (h *UserHandler) EmployerProfile(c echo.Context) error {
	profile, err := h.service.EmployerProfile(c.Request().Context(), principalFrom(c), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// @Summary      Update employer profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        user  path      string                  true  "User ID"
// @Param        body  body      employerProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.EmployerProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /employers/profile/{user} [put]
// @Router       /employers/profile/{user} [patch]
func (h *UserHandler) UpdateEmployerProfile(c echo.Context) error {
	var req employerProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	profile, err := h.service.UpdateEmployerProfile(c.Request().Context(), principalFrom(c), c.Param("user"), ports.EmployerProfileInput{
		CompanyWebsite:     req.CompanyWebsite,
		CompanyDescription: req.CompanyDescription,
		CompanyLocation:    req.CompanyLocation,
	}, isPartial(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// @Summary      Delete employer profile
// @Tags         profiles
// @Security     BearerAuth
// @Param        user  path  string  true  "User ID"
// @Success      204
// @Router       /employers/profile/{user} [delete]
func (h *UserHandler) DeleteEmployerProfile(c echo.Context) error {
	if err := h.service.DeleteEmployerProfile(c.Request().Context(), principalFrom(c), c.Param("user")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
