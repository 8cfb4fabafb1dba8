package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/services"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

type AttendanceHandler struct {
	BaseHandler
	service services.AttendanceService
}

func NewAttendanceHandler(service services.AttendanceService, logger utils.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetSheet returns the marking sheet for a date and course
// @Summary Get attendance sheet
// @Tags attendance
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param course query string false "Course; entries stay empty until selected"
// @Success 200 {object} services.AttendanceSheet
// @Router /attendance [get]
func (h *AttendanceHandler) GetSheet(c *gin.Context) {
	principal := PrincipalFromContext(c)

	date := c.Query("date")
	course := c.Query("course")

	h.LogRequest(c, "Getting attendance sheet", "date", date, "course", course)

	sheet, err := h.service.GetSheet(c.Request.Context(), principal.Department, date, course)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, sheet)
}

// Save records one day's attendance for the scoped students
// @Summary Save attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Success 200 {object} services.SaveAttendanceResult
// @Failure 400 {object} ErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) Save(c *gin.Context) {
	principal := PrincipalFromContext(c)

	var req validator.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Saving attendance", "date", req.Date, "course", req.Course)

	result, err := h.service.Save(c.Request.Context(), principal, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StudentHistory returns one in-department student's full record
// @Summary Get a student's attendance history
// @Tags attendance
// @Produce json
// @Param id path uint true "Student ID"
// @Success 200 {object} services.StudentHistory
// @Failure 404 {object} ErrorResponse
// @Router /students/{id}/attendance [get]
func (h *AttendanceHandler) StudentHistory(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Getting student history", "student_id", id)

	history, err := h.service.HistoryForTeacher(c.Request.Context(), principal.Department, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// Dashboard returns the authenticated student's own record
// @Summary Student dashboard
// @Tags attendance
// @Produce json
// @Success 200 {object} services.StudentHistory
// @Router /student/dashboard [get]
func (h *AttendanceHandler) Dashboard(c *gin.Context) {
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Getting student dashboard", "student_id", principal.StudentID)

	history, err := h.service.HistoryForStudent(c.Request.Context(), principal.StudentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
