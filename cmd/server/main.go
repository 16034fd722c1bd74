package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"showlib/api"
	"showlib/handlers"
	"showlib/internal/config"
	"showlib/internal/database"
	"showlib/services/metadata"
	"showlib/services/shows"
	"showlib/utils"
)

func main() {
	// Optional .env file; real environment variables take precedence.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogFile)

	db, err := database.NewDB(database.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		log.Fatalf("[startup] database: %v", err)
	}
	defer db.Close()

	repo := database.NewShowRepository(db.Connection())
	verifier := metadata.NewOMDbClient(cfg.OMDbAPIKey, cfg.OMDbBaseURL, cfg.VerifyTimeout)
	showsSvc := shows.NewService(repo, verifier)

	router := utils.NewRouter()
	router.Use(api.RequestLogger())
	handlers.NewShowsHandler(showsSvc).Register(router)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      utils.CORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[startup] listening on %s (db=%s)", cfg.ListenAddr, cfg.DatabasePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[startup] server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Print("[shutdown] signal received, draining connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[shutdown] forced: %v", err)
	}
}

// setupLogging sends logs to stderr, and additionally to a rotating file
// when one is configured.
func setupLogging(logFile string) {
	if logFile == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}
