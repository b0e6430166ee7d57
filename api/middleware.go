package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// RequestLogger logs every request once it has been served.
func RequestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client", c.ClientIP(),
		)
	}
}

// WrapHandler applies CORS and per-IP rate limiting in front of the router.
// A non-positive RateLimitPerMinute disables rate limiting.
func WrapHandler(h http.Handler, config *Config) http.Handler {
	if config.RateLimitPerMinute > 0 {
		h = httprate.LimitByIP(config.RateLimitPerMinute, time.Minute)(h)
	}

	origins := config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", HeaderPages, HeaderOutputSize},
	})(h)
}
