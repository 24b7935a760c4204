package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	_ "github.com/edustack/campus-api/api/swagger"
	"github.com/edustack/campus-api/internal/handler"
	"github.com/edustack/campus-api/internal/middleware"
	"github.com/edustack/campus-api/internal/repository"
	"github.com/edustack/campus-api/internal/router"
	"github.com/edustack/campus-api/internal/service"
	"github.com/edustack/campus-api/pkg/cache"
	"github.com/edustack/campus-api/pkg/config"
	"github.com/edustack/campus-api/pkg/database"
	"github.com/edustack/campus-api/pkg/logger"
)

// @title Campus API
// @version 0.1.0
// @description Education-management REST backend
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var guard middleware.Guard
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		guard = middleware.NewRedisGuard(redisClient, cfg.RateLimit)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	classRepo := repository.NewClassRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	relationRepo := repository.NewRelationRepository(db)

	handlers := router.Handlers{
		Users:       handler.NewUserHandler(service.NewUserService(userRepo, relationRepo, validate, logr)),
		Departments: handler.NewDepartmentHandler(service.NewDepartmentService(departmentRepo, validate, logr)),
		Subjects:    handler.NewSubjectHandler(service.NewSubjectService(subjectRepo, relationRepo, validate, logr)),
		Classes:     handler.NewClassHandler(service.NewClassService(classRepo, relationRepo, validate, logr)),
		Enrollments: handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollmentRepo, validate, logr)),
	}

	r := router.New(cfg, handlers, guard, metricsSvc, logr)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
