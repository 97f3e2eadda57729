package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapi/internal/model"
	"schoolapi/internal/service"
)

// TeacherHandler handles teacher endpoints.
type TeacherHandler struct {
	teacherService service.TeacherService
}

// NewTeacherHandler creates a new teacher handler.
func NewTeacherHandler(teacherService service.TeacherService) *TeacherHandler {
	return &TeacherHandler{teacherService: teacherService}
}

// CreateTeacherRequest represents a teacher creation request.
type CreateTeacherRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Email      string  `json:"email" validate:"required,email,max=255"`
	Phone      *string `json:"phone"`
	Department *string `json:"department" validate:"omitempty,max=255"`
}

// UpdateTeacherRequest represents a partial teacher update.
type UpdateTeacherRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email      *string `json:"email" validate:"omitempty,email,max=255"`
	Phone      *string `json:"phone"`
	Department *string `json:"department" validate:"omitempty,max=255"`
}

// TeacherResponse is the JSON representation of a teacher.
type TeacherResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Department *string   `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newTeacherResponse(t *model.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Phone:      t.Phone,
		Department: t.Department,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// List godoc
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Param search query string false "Matches name, email or department"
// @Success 200 {array} TeacherResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /teachers [get]
func (h *TeacherHandler) List(c echo.Context) error {
	teachers, err := h.teacherService.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return errorResponse(err)
	}

	resp := make([]TeacherResponse, 0, len(teachers))
	for i := range teachers {
		resp = append(resp, newTeacherResponse(&teachers[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} TeacherResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	teacher, err := h.teacherService.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newTeacherResponse(teacher))
}

// Create godoc
// @Summary Create a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param request body CreateTeacherRequest true "Teacher data"
// @Success 201 {object} TeacherResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /teachers [post]
func (h *TeacherHandler) Create(c echo.Context) error {
	var req CreateTeacherRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	teacher, err := h.teacherService.Create(c.Request().Context(), service.TeacherInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newTeacherResponse(teacher))
}

// Update godoc
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Param id path int true "Teacher ID"
// @Param request body UpdateTeacherRequest true "Fields to change"
// @Success 200 {object} TeacherResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /teachers/{id} [put]
func (h *TeacherHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateTeacherRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	teacher, err := h.teacherService.Update(c.Request().Context(), id, service.TeacherPatch{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newTeacherResponse(teacher))
}

// Delete godoc
// @Summary Delete a teacher
// @Tags teachers
// @Param id path int true "Teacher ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /teachers/{id} [delete]
func (h *TeacherHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.teacherService.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
