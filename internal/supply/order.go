// Order types for the supply chain.
package supply

import "github.com/talgya/bakehouse/internal/catalog"

// Status is the lifecycle state of an order. An order transitions
// PENDING -> DELIVERED exactly once and is immutable afterwards.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusDelivered Status = "DELIVERED"
)

// LineItem is one priced line of a placed order. UnitCost is locked at
// order time from that day's market price and bulk discount.
type LineItem struct {
	Type     catalog.IngredientType `json:"ingredient_type"`
	Quantity float64                `json:"quantity"`
	UnitCost float64                `json:"unit_cost"`
}

// Order is a pending or fulfilled supply request. Payment clears at
// creation; goods arrive when the lead time matures.
type Order struct {
	ID                   uint64     `json:"order_id"`
	VendorID             string     `json:"vendor_id"`
	OrderDay             int        `json:"order_day"`
	EstimatedDeliveryDay int        `json:"estimated_delivery_day"`
	ActualDeliveryDay    int        `json:"actual_delivery_day"`
	Items                []LineItem `json:"line_items"`
	Subtotal             float64    `json:"subtotal"`
	TotalCost            float64    `json:"total_cost"`
	Status               Status     `json:"status"`
}

// RequestLine is one unpriced line of an order request.
type RequestLine struct {
	Type     catalog.IngredientType
	Quantity float64
}

// Request is an inbound order command from the player.
type Request struct {
	VendorID string
	Lines    []RequestLine
}
