package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intervyo-backend/config"
	_ "intervyo-backend/docs" // Important for Swagger
	v1 "intervyo-backend/internal/delivery/http/v1"
	"intervyo-backend/internal/repository/postgres"
	"intervyo-backend/internal/usecase"
	"intervyo-backend/pkg/audit"
	"intervyo-backend/pkg/auth"
	"intervyo-backend/pkg/database"
	"intervyo-backend/pkg/logger"
	"intervyo-backend/pkg/redis"
)

// @title           Intervyo Backend API
// @version         1.0
// @description     Interview preparation platform: company fit, interview buddies, preparation calendars and crowdsourced questions.
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(!cfg.IsProduction())
	auditLogger := audit.Init("intervyo-backend", cfg.Environment)
	defer auditLogger.Flush()
	logger.Log.Info("Starting intervyo backend", "port", cfg.Port, "env", cfg.Environment)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiting falls back to memory)
	var cachePing usecase.Pinger
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
			cachePing = redis.HealthCheck
		}
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	buddyRepo := postgres.NewBuddyRepository(dbPool)
	groupRepo := postgres.NewStudyGroupRepository(dbPool)
	calendarRepo := postgres.NewCalendarRepository(dbPool)
	questionRepo := postgres.NewQuestionRepository(dbPool)

	if cfg.AuditLogToDB {
		auditLogger.SetPersistFunc(postgres.NewAuditEventRepository(dbPool).PersistFunc())
	}

	// 6. Setup UseCases
	gamificationUC := usecase.NewGamificationUsecase(userRepo)
	userUC := usecase.NewUserUsecase(userRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo)
	recommendationUC := usecase.NewRecommendationUsecase(userRepo, interviewRepo, companyRepo)
	buddyUC := usecase.NewBuddyUsecase(buddyRepo, interviewRepo, userRepo, gamificationUC)
	groupUC := usecase.NewStudyGroupUsecase(groupRepo, gamificationUC)
	calendarUC := usecase.NewCalendarUsecase(calendarRepo)
	questionUC := usecase.NewQuestionUsecase(questionRepo, userRepo, gamificationUC)
	healthUC := usecase.NewHealthUsecase(dbPool.Ping, cachePing)

	// 7. Setup Token Verification
	var keys *auth.KeySet
	if cfg.JWKSURL != "" {
		keys = auth.NewKeySet(cfg.JWKSURL)
	}
	verifier := auth.NewVerifier(cfg.JWTSecret, keys)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:           userUC,
		CompanyUC:        companyUC,
		RecommendationUC: recommendationUC,
		BuddyUC:          buddyUC,
		StudyGroupUC:     groupUC,
		CalendarUC:       calendarUC,
		QuestionUC:       questionUC,
		HealthUC:         healthUC,
		Verifier:         verifier,
		Config:           cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
