package v1

import (
	"net/http"
	"time"

	"intervyo-backend/config"
	"intervyo-backend/internal/delivery/http/middleware"
	"intervyo-backend/internal/delivery/http/response"
	"intervyo-backend/internal/domain"
	"intervyo-backend/internal/usecase"
	"intervyo-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC           domain.UserUsecase
	CompanyUC        domain.CompanyUsecase
	RecommendationUC domain.RecommendationUsecase
	BuddyUC          domain.BuddyUsecase
	StudyGroupUC     domain.StudyGroupUsecase
	CalendarUC       domain.CalendarUsecase
	QuestionUC       domain.QuestionUsecase
	HealthUC         usecase.HealthUsecase
	Verifier         middleware.TokenVerifier
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.AllowedOrigins, cfg.IsProduction())) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(window, cfg.RateLimitGlobalThreshold)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "System "+status["status"], status)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.CSRFMiddleware(cfg.IsProduction()))
	protected.Use(middleware.AuthMiddleware(deps.Verifier))
	protected.Use(middleware.RateLimitMiddleware(middleware.WriteRateLimitConfig(window, cfg.RateLimitWriteThreshold)))
	{
		NewUserHandler(protected, deps.UserUC)
		NewCompanyHandler(v1, deps.CompanyUC)
		NewRecommendationHandler(protected, deps.RecommendationUC)
		NewBuddyHandler(protected, deps.BuddyUC, deps.StudyGroupUC)
		NewCalendarHandler(protected, deps.CalendarUC)
		NewQuestionHandler(v1, protected, deps.QuestionUC)
	}

	return r
}
