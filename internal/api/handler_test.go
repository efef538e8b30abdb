package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/guttosm/salesclean/internal/domain/dto"
	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/middleware"
	"github.com/guttosm/salesclean/internal/service"
)

type mockRevenueService struct {
	agg      *models.RevenueAggregate
	run      *models.Run
	err      error
	gotStart *time.Time
}

func (m *mockRevenueService) LatestRun(context.Context) (*models.Run, error) {
	return m.run, m.err
}

func (m *mockRevenueService) GetRevenue(_ context.Context, _ string, start *time.Time) (*models.RevenueAggregate, error) {
	m.gotStart = start
	return m.agg, m.err
}

var _ service.RevenueService = (*mockRevenueService)(nil)

func setupRouterWithMock(s service.RevenueService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	r.Use(middleware.ErrorHandler)
	v1 := r.Group("/api/v1")
	v1.GET("/revenue", h.GetRevenue)
	v1.GET("/runs/latest", h.GetLatestRun)
	return r
}

func TestGetRevenue_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockRevenueService
		query  string
		status int
		assert func(t *testing.T, svc *mockRevenueService, body []byte)
	}{
		{
			name:   "missing product",
			svc:    &mockRevenueService{},
			query:  "/api/v1/revenue",
			status: http.StatusBadRequest,
		},
		{
			name:   "blank product",
			svc:    &mockRevenueService{},
			query:  "/api/v1/revenue?product=%20%20",
			status: http.StatusBadRequest,
		},
		{
			name:   "service rejects product",
			svc:    &mockRevenueService{err: service.ErrEmptyProduct},
			query:  "/api/v1/revenue?product=x",
			status: http.StatusBadRequest,
		},
		{
			name:   "invalid date format",
			svc:    &mockRevenueService{},
			query:  "/api/v1/revenue?product=Widget&start_date=2023/06/01",
			status: http.StatusBadRequest,
		},
		{
			name:   "not found",
			svc:    &mockRevenueService{},
			query:  "/api/v1/revenue?product=Widget",
			status: http.StatusNotFound,
		},
		{
			name:   "internal error",
			svc:    &mockRevenueService{err: errors.New("db down")},
			query:  "/api/v1/revenue?product=Widget",
			status: http.StatusInternalServerError,
			assert: func(t *testing.T, _ *mockRevenueService, body []byte) {
				var out dto.ErrorResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Message != "failed to fetch revenue" || out.ErrorDetails != "db down" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name: "success",
			svc: &mockRevenueService{agg: &models.RevenueAggregate{
				Product:       "Widget",
				TotalRevenue:  decimal.RequireFromString("24.98"),
				TotalQuantity: decimal.NewFromInt(3),
				Lines:         2,
			}},
			query:  "/api/v1/revenue?product=widget&start_date=2023-06-01",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockRevenueService, body []byte) {
				var out dto.RevenueResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				want := dto.RevenueResponse{Product: "Widget", TotalRevenue: "24.98", TotalQuantity: "3", Lines: 2}
				if out != want {
					t.Fatalf("unexpected body: %+v", out)
				}
				if svc.gotStart == nil || !svc.gotStart.Equal(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)) {
					t.Fatalf("start date not forwarded: %v", svc.gotStart)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			req := httptest.NewRequest(http.MethodGet, tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetLatestRun_TableDriven(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		name   string
		svc    *mockRevenueService
		status int
	}{
		{name: "none", svc: &mockRevenueService{}, status: http.StatusNotFound},
		{name: "error", svc: &mockRevenueService{err: errors.New("db down")}, status: http.StatusInternalServerError},
		{name: "found", svc: &mockRevenueService{run: &models.Run{ID: id, CleanRows: 5}}, status: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/latest", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status != http.StatusOK {
				return
			}
			var out map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if out["id"] != id.String() || out["clean_rows"] != float64(5) {
				t.Fatalf("unexpected body: %v", out)
			}
			if ids, ok := out["duplicate_order_ids"].([]any); !ok || len(ids) != 0 {
				t.Fatalf("duplicate_order_ids should be an empty list, got %v", out["duplicate_order_ids"])
			}
		})
	}
}
