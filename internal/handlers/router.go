package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/campus-track/attendance-service/internal/auth"
	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/services"
	"github.com/campus-track/attendance-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	studentHandler    *StudentHandler
	attendanceHandler *AttendanceHandler
	reportHandler     *ReportHandler
	healthHandler     *HealthHandler
	authMiddleware    *JWTAuthMiddleware
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	issuer *auth.Issuer,
	repoManager repositories.RepositoryManager,
	cacheHelper *cache.CacheHelper,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:    NewStudentHandler(serviceManager.Roster(), logger),
		attendanceHandler: NewAttendanceHandler(serviceManager.Attendance(), logger),
		reportHandler:     NewReportHandler(serviceManager.Report(), serviceManager.Export(), logger),
		healthHandler:     NewHealthHandler(repoManager, cacheHelper, logger),
		authMiddleware:    NewJWTAuthMiddleware(issuer, serviceManager.Auth()),
	}
}

// SetupRoutes registers the full route table.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthHandler.Check)

	// Credential exchange, no token required.
	router.POST("/login", hm.authHandler.TeacherLogin)
	router.POST("/register", hm.authHandler.Register)
	router.POST("/student/login", hm.authHandler.StudentLogin)

	// Teacher routes.
	teacher := router.Group("/")
	teacher.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireTeacher())
	{
		teacher.GET("/logout", hm.authHandler.Logout)
		teacher.GET("/home", hm.reportHandler.Home)

		teacher.GET("/students", hm.studentHandler.ListStudents)
		teacher.POST("/add", hm.studentHandler.CreateStudent)
		teacher.GET("/edit/:id", hm.studentHandler.GetStudent)
		teacher.POST("/edit/:id", hm.studentHandler.UpdateStudent)
		teacher.POST("/delete/:id", hm.studentHandler.DeleteStudent)
		teacher.GET("/students/:id/set_login", hm.studentHandler.GetStudent)
		teacher.POST("/students/:id/set_login", hm.studentHandler.SetStudentLogin)

		teacher.GET("/attendance", hm.attendanceHandler.GetSheet)
		teacher.POST("/attendance", hm.attendanceHandler.Save)
		teacher.GET("/students/:id/attendance", hm.attendanceHandler.StudentHistory)

		teacher.GET("/attendance/by-date", hm.reportHandler.ByDate)
		teacher.GET("/attendance/summary", hm.reportHandler.Summary)
		teacher.GET("/attendance/summary/export", hm.reportHandler.ExportSummary)
	}

	// Student self-service routes.
	student := router.Group("/student")
	student.Use(hm.authMiddleware.AuthMiddleware(), hm.authMiddleware.RequireStudent())
	{
		student.GET("/logout", hm.authHandler.Logout)
		student.GET("/dashboard", hm.attendanceHandler.Dashboard)
	}
}
