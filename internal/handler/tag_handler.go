package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"recipebox/internal/errors"
	"recipebox/internal/service"
)

// TagHandler handles tag endpoints.
type TagHandler struct {
	svc service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

// TagRequest carries a tag name for create and rename.
type TagRequest struct {
	Name string `json:"name" validate:"required"`
}

// assignedOnly reads the assigned_only query flag; "1" and "true" enable it.
func assignedOnly(c echo.Context) bool {
	v := c.QueryParam("assigned_only")
	return v == "1" || v == "true"
}

func attrID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// List godoc
// @Summary List the caller's tags
// @Tags tags
// @Produce json
// @Param assigned_only query bool false "Only tags assigned to a recipe"
// @Success 200 {array} model.Tag
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tags, err := h.svc.List(c.Request().Context(), userID, assignedOnly(c))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tags)
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body TagRequest true "Tag name"
// @Success 201 {object} model.Tag
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.svc.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, tag)
}

// Patch godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param request body TagRequest true "New name"
// @Success 200 {object} model.Tag
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [patch]
func (h *TagHandler) Patch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := attrID(c)
	if err != nil {
		return err
	}

	var req TagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tag, err := h.svc.Rename(c.Request().Context(), userID, id, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tag)
}

// Delete godoc
// @Summary Delete a tag
// @Tags tags
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := attrID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}
