package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pdf_extract/api"
	"pdf_extract/cli"
	"pdf_extract/pdf"
)

const (
	// DefaultMaxFileSize is the default maximum file size (10MB)
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default temporary directory
	DefaultTempDir = "./temp"

	// DefaultRateLimitPerMinute is the default number of requests per client IP and minute
	DefaultRateLimitPerMinute = 60

	// DefaultMaxPages is the default highest page number a request may name
	DefaultMaxPages = 10000

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 15 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout
	ServerWriteTimeout = 60 * time.Second

	// ServerIdleTimeout is the HTTP server idle timeout
	ServerIdleTimeout = 60 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful shutdown
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		err = serve(ctx)
	} else {
		err = cli.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	}
	if err == nil {
		return
	}

	stop()
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, exitErr.Message)
		os.Exit(exitErr.Code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(cli.ExitFailure)
}

// serve runs the HTTP API until ctx is cancelled.
func serve(ctx context.Context) error {
	// A missing .env file is not an error
	_ = godotenv.Load()

	config := loadConfig()

	logger, err := cli.NewLogger(strings.ToLower(getEnv("LOG_LEVEL", "info")), strings.ToLower(getEnv("LOG_FORMAT", "json")), os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(api.RequestLogger(logger), gin.Recovery())

	extractor := pdf.NewExtractor(pdf.NewPdfcpuEngine(logger), logger)
	api.SetupRoutes(r, api.NewHandler(config, extractor, logger))

	// Create HTTP server with timeout settings
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", config.Port),
		Handler:      api.WrapHandler(r, config),
		ReadTimeout:  ServerReadTimeout,
		WriteTimeout: ServerWriteTimeout,
		IdleTimeout:  ServerIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("Server starting",
			"addr", srv.Addr,
			"maxFileSize", config.MaxFileSize,
			"tempDir", config.TempDir,
			"rateLimitPerMinute", config.RateLimitPerMinute,
			"maxPages", config.MaxPages,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited gracefully")
	return nil
}

func loadConfig() *api.Config {
	return &api.Config{
		Port:               getEnv("PORT", DefaultPort),
		MaxFileSize:        getEnvInt64("MAX_FILE_SIZE", DefaultMaxFileSize),
		TempDir:            getEnv("TEMP_DIR", DefaultTempDir),
		RateLimitPerMinute: int(getEnvInt64("RATE_LIMIT_PER_MINUTE", DefaultRateLimitPerMinute)),
		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"*"}),
		MaxPages:           int(getEnvInt64("MAX_PAGES", DefaultMaxPages)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
