package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/salesclean/internal/domain/dto"
	"github.com/guttosm/salesclean/internal/domain/models"
	"github.com/guttosm/salesclean/internal/service"
)

// Handler exposes the results of cleaning runs over HTTP.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Call the revenue service
//   - Translate results into response DTOs
type Handler struct {
	svc service.RevenueService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.RevenueService) *Handler {
	return &Handler{svc: svc}
}

// GetLatestRun handles GET /api/v1/runs/latest.
//
// GetLatestRun godoc
// @Summary      Latest cleaning run
// @Description  Returns counts and timings of the most recent cleaning run
// @Tags         runs
// @Produce      json
// @Success      200  {object}  models.Run         "Success"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/runs/latest [get]
func (h *Handler) GetLatestRun(c *gin.Context) {
	run, err := h.svc.LatestRun(c.Request.Context())
	if err != nil {
		_ = c.Error(dto.NewErrorResponse("failed to fetch latest run", err))
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no cleaning run recorded", nil))
		return
	}
	if run.DuplicateOrderIDs == nil {
		run.DuplicateOrderIDs = []models.OrderIDCount{}
	}
	c.JSON(http.StatusOK, run)
}

// GetRevenue handles GET /api/v1/revenue.
//
// Query Parameters:
//   - product (string, required): product name, matched after the cleaner's
//     normalization ("blue widget" finds "Blue Widget").
//   - start_date (string, optional): minimum order date in YYYY-MM-DD format.
//
// GetRevenue godoc
// @Summary      Revenue by product
// @Description  Returns total revenue, total quantity and line count for a product in the latest cleaning run
// @Tags         revenue
// @Produce      json
// @Param        product     query     string  true   "Product name" example(Widget)
// @Param        start_date  query     string  false  "Start date in YYYY-MM-DD" example(2023-06-01)
// @Success      200         {object}  dto.RevenueResponse  "Success"
// @Failure      400         {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404         {object}  dto.ErrorResponse    "Not Found"
// @Failure      500         {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/revenue [get]
func (h *Handler) GetRevenue(c *gin.Context) {
	product := strings.TrimSpace(c.Query("product"))
	if product == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("product is required", nil))
		return
	}

	var startDate *time.Time
	if s := c.Query("start_date"); s != "" {
		parsed, err := time.Parse(models.DateLayout, s)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid start_date format, expected YYYY-MM-DD", err))
			return
		}
		startDate = &parsed
	}

	agg, err := h.svc.GetRevenue(c.Request.Context(), product, startDate)
	if errors.Is(err, service.ErrEmptyProduct) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("product is required", err))
		return
	}
	if err != nil {
		_ = c.Error(dto.NewErrorResponse("failed to fetch revenue", err))
		return
	}
	if agg == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	c.JSON(http.StatusOK, dto.RevenueResponse{
		Product:       agg.Product,
		TotalRevenue:  agg.TotalRevenue.String(),
		TotalQuantity: agg.TotalQuantity.String(),
		Lines:         agg.Lines,
	})
}
