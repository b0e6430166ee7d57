package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pdf_extract/pdf"
)

// Config holds application configuration
type Config struct {
	Port               string
	MaxFileSize        int64
	TempDir            string
	RateLimitPerMinute int
	CORSOrigins        []string
	// MaxPages is the highest page number a request may name. Zero means no limit.
	MaxPages int
}

// Handler serves the page extraction endpoints.
type Handler struct {
	config    *Config
	extractor *pdf.Extractor
	logger    *zap.SugaredLogger
}

func NewHandler(config *Config, extractor *pdf.Extractor, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{config: config, extractor: extractor, logger: logger}
}

func SetupRoutes(r *gin.Engine, h *Handler) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/extract-pages", h.HandleExtractPages)
		apiGroup.POST("/parse-pages", h.HandleParsePages)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_extract",
		})
	})
}
