package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/services"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

type AuthHandler struct {
	BaseHandler
	service services.AuthService
}

func NewAuthHandler(service services.AuthService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// Register creates a teacher account, gated by the shared registration code
// @Summary Register a teacher
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} SuccessResponse{data=services.TeacherInfo}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Invalid registration code"
// @Failure 409 {object} ErrorResponse "Username taken"
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req validator.TeacherRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Registering teacher", "username", req.Username)

	info, err := h.service.RegisterTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Message:   "Teacher registered",
		Data:      info,
		Timestamp: time.Now().UTC(),
	})
}

// TeacherLogin exchanges teacher credentials for a token
// @Summary Teacher login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /login [post]
func (h *AuthHandler) TeacherLogin(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Teacher login attempt", "username", req.Username)

	result, err := h.service.LoginTeacher(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// StudentLogin exchanges provisioned student credentials for a token
// @Summary Student login
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} services.LoginResult
// @Failure 401 {object} ErrorResponse
// @Router /student/login [post]
func (h *AuthHandler) StudentLogin(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	h.LogRequest(c, "Student login attempt", "username", req.Username)

	result, err := h.service.LoginStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logout revokes the presented token. Shared by teacher and student routes.
// @Summary Logout
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	principal := PrincipalFromContext(c)

	h.LogRequest(c, "Logout", "name", principal.Name)

	if err := h.service.Logout(c.Request.Context(), principal); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Message:   "Logged out",
		Timestamp: time.Now().UTC(),
	})
}
