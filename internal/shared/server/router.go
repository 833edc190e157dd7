package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ats-analyzer/internal/analysis"
	"ats-analyzer/internal/jobpost"
	"ats-analyzer/internal/llm"
	"ats-analyzer/internal/llm/groq"
	"ats-analyzer/internal/ocr"
	"ats-analyzer/internal/services/health"
	"ats-analyzer/internal/shared/config"
	"ats-analyzer/internal/shared/metrics"
	"ats-analyzer/internal/shared/server/middleware"
	"ats-analyzer/internal/shared/server/respond"
	"ats-analyzer/internal/shared/telemetry"
	"ats-analyzer/internal/web"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	var client llm.Client = llm.PlaceholderClient{}
	if cfg.GroqAPIKey != "" {
		groqClient, err := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL,
			time.Duration(cfg.GroqTimeoutSeconds)*time.Second)
		if err != nil {
			telemetry.Error("groq.client_init_failed", map[string]any{"error": err.Error()})
		} else {
			client = groqClient
		}
	} else {
		telemetry.Warn("groq.not_configured", map[string]any{"hint": "set GROQ_API_KEY"})
	}

	engine := ocr.NewEngine(cfg.TesseractCmd, cfg.PdftoppmCmd, cfg.OCRLanguages)
	repo := analysis.NewMemoryRepo(cfg.StoreCap)
	svc := &analysis.Service{Repo: repo, OCR: engine, LLM: client}
	fetcher := jobpost.NewFetcher(0)
	handler := analysis.NewHandler(svc, fetcher, cfg.MaxUploadBytes)

	healthSvc := health.NewService(cfg.GroqAPIKey != "")
	healthRoute := func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status())
	}

	r.GET("/healthz", healthRoute)
	r.GET("/metrics", metrics.Handler())
	web.Register(r)

	limiter := middleware.NewRateLimiter(time.Now)
	createRule := middleware.RateLimitRule{Rate: float64(cfg.RateLimitRPS), Burst: cfg.RateLimitRPS}

	api := r.Group("/api/v1")
	api.GET("/health", healthRoute)
	handler.RegisterRoutes(api, middleware.RateLimit(createRule, limiter))

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
