package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/scolaria/scolaria-backend/internal/config"
	"github.com/scolaria/scolaria-backend/internal/handler"
	"github.com/scolaria/scolaria-backend/internal/middleware"
	"github.com/scolaria/scolaria-backend/internal/response"
	"github.com/scolaria/scolaria-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Teacher   *handler.TeacherHandler
	Class     *handler.ClassHandler
	Subject   *handler.SubjectHandler
	Course    *handler.CourseHandler
	Timetable *handler.TimetableHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Authenticated users may read everything; writes require an admin token.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/register",
			middleware.RequireJWT(authService), middleware.RequireAdmin(),
			handlers.Auth.Register,
		)
		auth.GET("/me", middleware.RequireJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. API Group (JWT) ────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireJWT(authService))

	admin := middleware.RequireAdmin()
	{
		// Teachers
		api.GET("/teachers", handlers.Teacher.ListTeachers)
		api.GET("/teachers/:id", handlers.Teacher.GetTeacher)
		api.POST("/teachers", admin, handlers.Teacher.CreateTeacher)
		api.PUT("/teachers/:id", admin, handlers.Teacher.UpdateTeacher)
		api.DELETE("/teachers/:id", admin, handlers.Teacher.DeleteTeacher)

		// Classes
		api.GET("/classes", handlers.Class.ListClasses)
		api.GET("/classes/:id", handlers.Class.GetClass)
		api.POST("/classes", admin, handlers.Class.CreateClass)
		api.PUT("/classes/:id", admin, handlers.Class.UpdateClass)
		api.DELETE("/classes/:id", admin, handlers.Class.DeleteClass)

		// Subjects
		api.GET("/subjects", handlers.Subject.ListSubjects)
		api.GET("/subjects/:id", handlers.Subject.GetSubject)
		api.POST("/subjects", admin, handlers.Subject.CreateSubject)
		api.PUT("/subjects/:id", admin, handlers.Subject.UpdateSubject)
		api.DELETE("/subjects/:id", admin, handlers.Subject.DeleteSubject)

		// Courses
		api.GET("/courses", handlers.Course.ListCourses)
		api.GET("/courses/:id", handlers.Course.GetCourse)
		api.POST("/courses", admin, handlers.Course.CreateCourse)
		api.PUT("/courses/:id", admin, handlers.Course.UpdateCourse)
		api.DELETE("/courses/:id", admin, handlers.Course.DeleteCourse)

		// Timetable
		api.GET("/timetable", handlers.Timetable.ListSlots)
		api.GET("/timetable/course/:course_id", handlers.Timetable.ListByCourse)
		api.GET("/timetable/class/:class_id", handlers.Timetable.ListByClass)
		api.GET("/timetable/class/:class_id/current", handlers.Timetable.CurrentByClass)
		api.POST("/timetable", admin, handlers.Timetable.CreateSlot)
		api.PUT("/timetable/:id", admin, handlers.Timetable.UpdateSlot)
		api.DELETE("/timetable/:id", admin, handlers.Timetable.DeleteSlot)
	}

	// ─── 3. WebSocket Group (Query-Param Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/timetable/stream", handlers.WS.TimetableStream)
	}

	return router
}
