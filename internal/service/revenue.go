package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/guttosm/salesclean/internal/cleaning"
	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/storage"
)

// ErrEmptyProduct is returned when the product name is blank after normalization.
var ErrEmptyProduct = errors.New("product is required")

// RevenueService exposes the persisted results of cleaning runs.
type RevenueService interface {
	LatestRun(ctx context.Context) (*models.Run, error)
	GetRevenue(ctx context.Context, product string, startDate *time.Time) (*models.RevenueAggregate, error)
}

type revenueService struct {
	repo storage.SalesRepository
}

func NewRevenueService(repo storage.SalesRepository) RevenueService {
	return &revenueService{repo: repo}
}

func (s *revenueService) LatestRun(ctx context.Context) (*models.Run, error) {
	return s.repo.LatestRun(ctx)
}

// GetRevenue normalizes product the way the cleaner does before querying,
// so "  WIDGET" finds rows stored as "Widget".
func (s *revenueService) GetRevenue(ctx context.Context, product string, startDate *time.Time) (*models.RevenueAggregate, error) {
	name := cleaning.NormalizeText(sql.Null[string]{V: product, Valid: true})
	if !name.Valid {
		return nil, ErrEmptyProduct
	}
	return s.repo.GetRevenueByProduct(ctx, name.V, startDate)
}
