package dto

// RevenueResponse represents the JSON structure returned by the
// GET /api/v1/revenue endpoint.
//
// Decimal amounts are rendered as strings so no precision is lost in transit.
type RevenueResponse struct {
	Product       string `json:"product" example:"Widget"`       // Normalized product name
	TotalRevenue  string `json:"total_revenue" example:"1234.5"` // Sum of price * quantity
	TotalQuantity string `json:"total_quantity" example:"87"`    // Sum of quantity
	Lines         int64  `json:"lines" example:"42"`             // Number of clean order lines
}
