package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapi/internal/model"
	"schoolapi/internal/service"
)

// ClassHandler handles class endpoints.
type ClassHandler struct {
	classService service.ClassService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(classService service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// CreateClassRequest represents a class creation request.
type CreateClassRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Section    *string `json:"section" validate:"omitempty,max=50"`
	RoomNumber *string `json:"room_number" validate:"omitempty,max=50"`
}

// UpdateClassRequest represents a partial class update.
type UpdateClassRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Section    *string `json:"section" validate:"omitempty,max=50"`
	RoomNumber *string `json:"room_number" validate:"omitempty,max=50"`
}

// ClassResponse is the JSON representation of a class.
type ClassResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Section    *string   `json:"section"`
	RoomNumber *string   `json:"room_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newClassResponse(c *model.Class) ClassResponse {
	return ClassResponse{
		ID:         c.ID,
		Name:       c.Name,
		Section:    c.Section,
		RoomNumber: c.RoomNumber,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// List godoc
// @Summary List classes
// @Tags classes
// @Produce json
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {array} ClassResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.classService.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return errorResponse(err)
	}

	resp := make([]ClassResponse, 0, len(classes))
	for i := range classes {
		resp = append(resp, newClassResponse(&classes[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a class
// @Tags classes
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} ClassResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /classes/{id} [get]
func (h *ClassHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	class, err := h.classService.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newClassResponse(class))
}

// Create godoc
// @Summary Create a class
// @Tags classes
// @Accept json
// @Produce json
// @Param request body CreateClassRequest true "Class data"
// @Success 201 {object} ClassResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req CreateClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	class, err := h.classService.Create(c.Request().Context(), service.ClassInput{
		Name:       req.Name,
		Section:    req.Section,
		RoomNumber: req.RoomNumber,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newClassResponse(class))
}

// Update godoc
// @Summary Update a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param request body UpdateClassRequest true "Fields to change"
// @Success 200 {object} ClassResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /classes/{id} [put]
func (h *ClassHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateClassRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	class, err := h.classService.Update(c.Request().Context(), id, service.ClassPatch{
		Name:       req.Name,
		Section:    req.Section,
		RoomNumber: req.RoomNumber,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newClassResponse(class))
}

// Delete godoc
// @Summary Delete a class
// @Tags classes
// @Param id path int true "Class ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.classService.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
