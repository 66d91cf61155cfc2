package validation

// Item is a single order line. MenuItemID is echoed back untouched and may be
// a number (fixture menus) or a string (OCR menus).
type Item struct {
	MenuItemID interface{} `json:"menu_item_id"`
	Name       string      `json:"item_name,omitempty"`
	Quantity   int64       `json:"quantity" validate:"min=1"` // must be >= 1
	Price      int64       `json:"price" validate:"min=0"`    // unit price
}

// CreateOrderRequest is the payload for POST /api/orders.
// An empty items array is accepted; a missing one is not.
type CreateOrderRequest struct {
	StoreID  int    `json:"store_id" validate:"required"`
	Items    []Item `json:"items" validate:"required,dive"`
	Language string `json:"language,omitempty"`
}
