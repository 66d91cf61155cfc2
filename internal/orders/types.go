package orders

import "time"

// CreatedAtLayout matches JavaScript's Date.toISOString output.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

// Item is an order line as submitted by the client.
type Item struct {
	MenuItemID interface{} `json:"menu_item_id"`
	Name       string      `json:"item_name,omitempty"`
	Quantity   int64       `json:"quantity"`
	Price      int64       `json:"price"`
}

// Subtotal is price * quantity.
func (i Item) Subtotal() int64 { return i.Price * i.Quantity }

// Order is the transient result of an order creation. It is never stored.
type Order struct {
	OrderID     string    `json:"order_id"`
	StoreID     int       `json:"store_id"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"total_amount"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"-"`
	CreatedAtTS string    `json:"created_at"`
}

// Request is the validated input to Service.Create.
type Request struct {
	StoreID  int
	Items    []Item
	Language string
}
