package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/services"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

// StudentHandler serves the teacher-facing roster endpoints. Every operation
// is scoped to the authenticated teacher's department.
type StudentHandler struct {
	BaseHandler
	service services.RosterService
}

func NewStudentHandler(service services.RosterService, logger utils.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ListStudents returns the department roster
// @Summary List students
// @Tags students
// @Produce json
// @Param q query string false "Substring match on roll_no/name/course"
// @Param course query string false "Exact course filter"
// @Success 200 {object} services.StudentListResult
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	principal := PrincipalFromContext(c)

	course := c.Query("course")
	query := c.Query("q")

	h.LogRequest(c, "Listing students", "department", principal.Department, "course", course, "q", query)

	result, err := h.service.ListStudents(c.Request.Context(), principal.Department, course, query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateStudent adds a roster row in the teacher's department
// @Summary Add student
// @Tags students
// @Accept json
// @Produce json
// @Success 201 {object} models.Student
// @Failure 400 {object} ErrorResponse
// @Router /add [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	principal := PrincipalFromContext(c)

	var req validator.StudentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Creating student", "roll_no", req.RollNo, "department", principal.Department)

	student, err := h.service.CreateStudent(c.Request.Context(), principal.Department, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// GetStudent fetches one in-department student
// @Summary Get student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /edit/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Getting student", "student_id", id)

	student, err := h.service.GetStudent(c.Request.Context(), principal.Department, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// UpdateStudent replaces the editable fields of one student
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} models.Student
// @Failure 404 {object} ErrorResponse
// @Router /edit/{id} [post]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	principal := PrincipalFromContext(c)

	var req validator.StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Updating student", "student_id", id)

	student, err := h.service.UpdateStudent(c.Request.Context(), principal.Department, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent removes one student; missing or foreign ids succeed silently
// @Summary Delete student
// @Tags students
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} SuccessResponse
// @Router /delete/{id} [post]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Deleting student", "student_id", id)

	if err := h.service.DeleteStudent(c.Request.Context(), principal.Department, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Student deleted",
		Timestamp: time.Now().UTC(),
	})
}

// SetStudentLogin provisions or overwrites a student's self-service login
// @Summary Set student login
// @Tags students
// @Accept json
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /students/{id}/set_login [post]
func (h *StudentHandler) SetStudentLogin(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	principal := PrincipalFromContext(c)

	var req validator.SetStudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Provisioning student login", "student_id", id)

	if err := h.service.SetStudentLogin(c.Request.Context(), principal.Department, id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Student login updated",
		Timestamp: time.Now().UTC(),
	})
}
