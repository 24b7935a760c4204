package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/edustack/campus-api/internal/handler"
	"github.com/edustack/campus-api/internal/middleware"
	"github.com/edustack/campus-api/internal/service"
	"github.com/edustack/campus-api/pkg/config"
	"github.com/edustack/campus-api/pkg/logger"
	corsmiddleware "github.com/edustack/campus-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edustack/campus-api/pkg/middleware/requestid"
)

// Handlers bundles the route handlers the router wires up.
type Handlers struct {
	Users       *handler.UserHandler
	Departments *handler.DepartmentHandler
	Subjects    *handler.SubjectHandler
	Classes     *handler.ClassHandler
	Enrollments *handler.EnrollmentHandler
}

// New builds the Gin engine with the full middleware chain and route table.
func New(cfg *config.Config, h Handlers, guard middleware.Guard, metricsSvc *service.MetricsService, logr *zap.Logger) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.RateLimit(guard, metricsSvc, logr))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Metrics.Enabled {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	users := r.Group("/users")
	{
		users.GET("", h.Users.List)
		users.POST("", h.Users.Create)
		users.GET("/:id", h.Users.Get)
		users.GET("/:id/departments", h.Users.Departments)
		users.GET("/:id/subjects", h.Users.Subjects)
	}

	departments := r.Group("/departments")
	{
		departments.GET("", h.Departments.List)
		departments.POST("", h.Departments.Create)
		departments.GET("/:id", h.Departments.Get)
		departments.GET("/:id/subjects", h.Departments.Subjects)
	}

	subjects := r.Group("/subjects")
	{
		subjects.GET("", h.Subjects.List)
		subjects.POST("", h.Subjects.Create)
		subjects.GET("/:id", h.Subjects.Get)
		subjects.GET("/:id/classes", h.Subjects.Classes)
		subjects.GET("/:id/users", h.Subjects.Users)
	}

	classes := r.Group("/classes")
	{
		classes.GET("", h.Classes.List)
		classes.POST("", h.Classes.Create)
		classes.GET("/:id", h.Classes.Get)
		classes.GET("/:id/users", h.Classes.Users)
	}

	r.POST("/enrollments", h.Enrollments.Create)

	return r
}
