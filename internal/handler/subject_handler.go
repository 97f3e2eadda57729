package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapi/internal/model"
	"schoolapi/internal/repository"
	"schoolapi/internal/service"
)

// SubjectHandler handles subject endpoints.
type SubjectHandler struct {
	subjectService service.SubjectService
}

// NewSubjectHandler creates a new subject handler.
func NewSubjectHandler(subjectService service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

// CreateSubjectRequest represents a subject creation request.
type CreateSubjectRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Code      string `json:"code" validate:"required,max=50"`
	TeacherID *uint  `json:"teacher_id" validate:"omitempty,min=1"`
	ClassID   *uint  `json:"class_id" validate:"omitempty,min=1"`
}

// UpdateSubjectRequest represents a partial subject update.
type UpdateSubjectRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Code      *string `json:"code" validate:"omitempty,min=1,max=50"`
	TeacherID *uint   `json:"teacher_id" validate:"omitempty,min=1"`
	ClassID   *uint   `json:"class_id" validate:"omitempty,min=1"`
}

// SubjectResponse is the JSON representation of a subject.
type SubjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	TeacherID   *uint     `json:"teacher_id"`
	TeacherName *string   `json:"teacher_name"`
	ClassID     *uint     `json:"class_id"`
	ClassName   *string   `json:"class_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSubjectResponse(s *model.Subject) SubjectResponse {
	return SubjectResponse{
		ID:          s.ID,
		Name:        s.Name,
		Code:        s.Code,
		TeacherID:   s.TeacherID,
		TeacherName: s.TeacherName(),
		ClassID:     s.ClassID,
		ClassName:   s.ClassName(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// List godoc
// @Summary List subjects
// @Tags subjects
// @Produce json
// @Param search query string false "Matches name or code"
// @Param teacher_id query int false "Only subjects of this teacher"
// @Param class_id query int false "Only subjects of this class"
// @Success 200 {array} SubjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /subjects [get]
func (h *SubjectHandler) List(c echo.Context) error {
	teacherID, err := queryID(c, "teacher_id")
	if err != nil {
		return err
	}
	classID, err := queryID(c, "class_id")
	if err != nil {
		return err
	}

	subjects, err := h.subjectService.List(c.Request().Context(), repository.SubjectFilter{
		Search:    c.QueryParam("search"),
		TeacherID: teacherID,
		ClassID:   classID,
	})
	if err != nil {
		return errorResponse(err)
	}

	resp := make([]SubjectResponse, 0, len(subjects))
	for i := range subjects {
		resp = append(resp, newSubjectResponse(&subjects[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a subject
// @Tags subjects
// @Produce json
// @Param id path int true "Subject ID"
// @Success 200 {object} SubjectResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subjects/{id} [get]
func (h *SubjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	subject, err := h.subjectService.Get(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newSubjectResponse(subject))
}

// Create godoc
// @Summary Create a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param request body CreateSubjectRequest true "Subject data"
// @Success 201 {object} SubjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /subjects [post]
func (h *SubjectHandler) Create(c echo.Context) error {
	var req CreateSubjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	subject, err := h.subjectService.Create(c.Request().Context(), service.SubjectInput{
		Name:      req.Name,
		Code:      req.Code,
		TeacherID: req.TeacherID,
		ClassID:   req.ClassID,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, newSubjectResponse(subject))
}

// Update godoc
// @Summary Update a subject
// @Tags subjects
// @Accept json
// @Produce json
// @Param id path int true "Subject ID"
// @Param request body UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} SubjectResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateSubjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	subject, err := h.subjectService.Update(c.Request().Context(), id, service.SubjectPatch{
		Name:      req.Name,
		Code:      req.Code,
		TeacherID: req.TeacherID,
		ClassID:   req.ClassID,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, newSubjectResponse(subject))
}

// Delete godoc
// @Summary Delete a subject
// @Tags subjects
// @Param id path int true "Subject ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.subjectService.Delete(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
