package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapi/internal/model"
	"schoolapi/internal/repository"
	"schoolapi/internal/service"
)

// StudentHandler handles student endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudentRequest represents a student creation request.
type CreateStudentRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   string  `json:"email" validate:"required,email,max=255"`
	Phone   *string `json:"phone"`
	ClassID *uint   `json:"class_id" validate:"omitempty,min=1"`
}

// UpdateStudentRequest represents a partial student update.
type UpdateStudentRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Phone   *string `json:"phone"`
	ClassID *uint   `json:"class_id" validate:"omitempty,min=1"`
}

// StudentResponse is the JSON representation of a student.
type StudentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	ClassID   *uint     `json:"class_id"`
	ClassName *string   `json:"class_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newStudentResponse(s *model.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		ClassID:   s.ClassID,
		ClassName: s.ClassName(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// List godoc
// @Summary List students
// @Tags students
// @Produce json
// @Param search query string false "Matches name or email"
// @Param class_id query int false "Only students of this class"
// @Success 200 {array} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) List(c echo.Context) error {
	classID, err := queryID(c, "class_id")
	if err != nil {
		return err
	}

	students, err := h.studentService.List(c.Request().Context(), repository.StudentFilter{
		Search:  c.QueryParam("search"),
		ClassID: classID,
	})
	if err != nil {
		return errorResponse(err)
	}

	resp := make([]StudentResponse, 0, len(students))
	for i := range students {
		resp = append(resp, newStudentResponse(&students[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a student
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} StudentResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	student, err := h.studentService.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newStudentResponse(student))
}

// Create godoc
// @Summary Create a student
// @Tags students
// @Accept json
// @Produce json
// @Param request body CreateStudentRequest true "Student data"
// @Success 201 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	var req CreateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.Create(c.Request().Context(), service.StudentInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		ClassID: req.ClassID,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newStudentResponse(student))
}

// Update godoc
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body UpdateStudentRequest true "Fields to change"
// @Success 200 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateStudentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	student, err := h.studentService.Update(c.Request().Context(), id, service.StudentPatch{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		ClassID: req.ClassID,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newStudentResponse(student))
}

// Delete godoc
// @Summary Delete a student
// @Tags students
// @Param id path int true "Student ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.studentService.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
