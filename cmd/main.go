package main

//
//  @title           salesclean API
//  @version         1.0
//  @description     Sales dataset cleaner: run history and revenue of the latest cleaned dataset.
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/salesclean
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        revenue
//  @tag.description Revenue of the latest cleaned dataset
//
//  @tag.name        runs
//  @tag.description Cleaning run history
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/salesclean/config"
	_ "github.com/guttosm/salesclean/docs" // swagger docs
	"github.com/guttosm/salesclean/internal/app"
	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/ingestion"
	"github.com/guttosm/salesclean/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until SIGINT or SIGTERM, then shuts the server down
// and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runClean resolves the run's paths against the project root, opens the
// Postgres sink when enabled and cleans the input file.
func runClean(ctx context.Context, cfg config.Config) (*models.Run, error) {
	opts := ingestion.Options{
		InputPath:   ingestion.ResolvePath(cfg.Cleaner.RootDir, cfg.Cleaner.InputFile),
		OutputPath:  ingestion.ResolvePath(cfg.Cleaner.RootDir, cfg.Cleaner.OutputFile),
		PreviewRows: cfg.Cleaner.PreviewRows,
	}

	// Fail on a missing input before touching the database.
	if _, err := os.Stat(opts.InputPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ingestion.ErrInputNotFound, opts.InputPath)
	}

	db, err := app.OpenSink(cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	return ingestion.ProcessFile(ctx, opts, db)
}

// main is the entry point of the salesclean application.
//
// Modes (selected via --mode flag):
//   - clean: Cleans INPUT_FILE into OUTPUT_FILE (and Postgres when enabled).
//   - api:   Starts the REST API over the persisted runs.
//
// Flags:
//   - --mode:   Execution mode ("clean" or "api"). Default: "clean".
//   - --input:  Raw CSV path; overrides INPUT_FILE.
//   - --output: Clean CSV path; overrides OUTPUT_FILE.
//   - --port:   Port for the API server. Defaults to SERVER_PORT.
func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	mode := flag.String("mode", "clean", "Mode: clean or api")
	input := flag.String("input", cfg.Cleaner.InputFile, "Raw sales CSV (relative to ROOT_DIR)")
	output := flag.String("output", cfg.Cleaner.OutputFile, "Cleaned CSV destination (relative to ROOT_DIR)")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "clean":
		cfg.Cleaner.InputFile = *input
		cfg.Cleaner.OutputFile = *output

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		run, err := runClean(ctx, cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("cleaning failed")
		}
		logger.L().Info().Str("run_id", run.ID.String()).Msg("cleaning completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(context.Background(), server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
