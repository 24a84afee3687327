package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/service"
)

// maxImageBytes caps multipart image payloads.
const maxImageBytes = 10 << 20

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	svc service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(svc service.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// AttributeRequest is a {name} descriptor for a tag or ingredient.
type AttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe creation payload. Price is a
// decimal string with at most two decimal places.
type CreateRecipeRequest struct {
	Title       string             `json:"title" validate:"required"`
	TimeMinutes int                `json:"time_minutes" validate:"required,min=1"`
	Price       string             `json:"price" validate:"required"`
	Link        string             `json:"link"`
	Description string             `json:"description"`
	Tags        []AttributeRequest `json:"tags" validate:"omitempty,dive"`
	Ingredients []AttributeRequest `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents a recipe update payload. Absent fields are
// left untouched on PATCH; PUT requires the mandatory scalars and defaults
// the rest. There is no user field: ownership is not writable.
type UpdateRecipeRequest struct {
	Title       *string             `json:"title"`
	TimeMinutes *int                `json:"time_minutes" validate:"omitempty,min=1"`
	Price       *string             `json:"price"`
	Link        *string             `json:"link"`
	Description *string             `json:"description"`
	Tags        *[]AttributeRequest `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]AttributeRequest `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeResponse is the abbreviated recipe representation used by listings.
type RecipeResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	TimeMinutes int                `json:"time_minutes"`
	Price       string             `json:"price"`
	Link        string             `json:"link"`
	Image       string             `json:"image"`
	Tags        []model.Tag        `json:"tags"`
	Ingredients []model.Ingredient `json:"ingredients"`
}

// RecipeDetailResponse adds the long-form description to the listing
// representation.
type RecipeDetailResponse struct {
	RecipeResponse
	Description string `json:"description"`
}

// ImageResponse is returned by the upload-image endpoint.
type ImageResponse struct {
	Image string `json:"image"`
}

func toRecipeResponse(r *model.Recipe) RecipeResponse {
	tags := r.Tags
	if tags == nil {
		tags = []model.Tag{}
	}
	ingredients := r.Ingredients
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	return RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Image:       r.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func toRecipeDetailResponse(r *model.Recipe) RecipeDetailResponse {
	return RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(r),
		Description:    r.Description,
	}
}

// parsePrice accepts a decimal string with at most two decimal places.
func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, echo.NewHTTPError(http.StatusBadRequest, "price must be a decimal number")
	}
	if price.Exponent() < -2 {
		return decimal.Decimal{}, echo.NewHTTPError(http.StatusBadRequest, "price must have at most 2 decimal places")
	}
	return price, nil
}

func recipeID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid recipe id")
	}
	return uint(id), nil
}

func toAttributeInputs(reqs []AttributeRequest) []service.AttributeInput {
	inputs := make([]service.AttributeInput, 0, len(reqs))
	for _, r := range reqs {
		inputs = append(inputs, service.AttributeInput{Name: r.Name})
	}
	return inputs
}

// List godoc
// @Summary List the caller's recipes
// @Tags recipes
// @Produce json
// @Success 200 {array} RecipeResponse
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	recipes, err := h.svc.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	resp := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		resp = append(resp, toRecipeResponse(&recipes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one recipe with full detail
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetailResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	recipe, err := h.svc.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body CreateRecipeRequest true "Recipe payload"
// @Success 201 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	price, err := parsePrice(req.Price)
	if err != nil {
		return err
	}

	recipe, err := h.svc.Create(c.Request().Context(), userID, service.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        toAttributeInputs(req.Tags),
		Ingredients: toAttributeInputs(req.Ingredients),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, toRecipeDetailResponse(recipe))
}

// Patch godoc
// @Summary Partially update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Fields to change"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) Patch(c echo.Context) error {
	return h.update(c, false)
}

// Put godoc
// @Summary Fully update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Complete recipe"
// @Success 200 {object} RecipeDetailResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Put(c echo.Context) error {
	return h.update(c, true)
}

// update drives both PATCH and PUT. A full update requires the mandatory
// scalars and resets unsupplied optional fields and attribute sets to their
// defaults.
func (h *RecipeHandler) update(c echo.Context, full bool) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if full {
		if req.Title == nil || req.TimeMinutes == nil || req.Price == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "title, time_minutes and price are required")
		}
		empty := ""
		if req.Link == nil {
			req.Link = &empty
		}
		if req.Description == nil {
			req.Description = &empty
		}
		if req.Tags == nil {
			req.Tags = &[]AttributeRequest{}
		}
		if req.Ingredients == nil {
			req.Ingredients = &[]AttributeRequest{}
		}
	}

	input := service.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Link:        req.Link,
		Description: req.Description,
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return err
		}
		input.Price = &price
	}
	if req.Tags != nil {
		tags := toAttributeInputs(*req.Tags)
		input.Tags = &tags
	}
	if req.Ingredients != nil {
		ingredients := toAttributeInputs(*req.Ingredients)
		input.Ingredients = &ingredients
	}

	recipe, err := h.svc.Update(c.Request().Context(), userID, id, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toRecipeDetailResponse(recipe))
}

// Delete godoc
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	if err := h.svc.Delete(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an image for a recipe
// @Tags recipes
// @Accept mpfd
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /recipes/{id}/upload-image [post]
func (h *RecipeHandler) UploadImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := recipeID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image field is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image")
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image")
	}
	if len(payload) > maxImageBytes {
		return echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}

	recipe, err := h.svc.UploadImage(c.Request().Context(), userID, id, payload)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ImageResponse{Image: recipe.Image})
}
