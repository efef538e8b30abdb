package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salesclean/config"
	"github.com/guttosm/salesclean/internal/api"
	"github.com/guttosm/salesclean/internal/service"
	"github.com/guttosm/salesclean/internal/storage"
)

// InitializeApp wires the API mode: database, repository, service, handlers
// and probes.
//
// Returns:
//   - *gin.Engine: the configured Gin router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewSalesRepository(db)
	svc := service.NewRevenueService(repo)
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
