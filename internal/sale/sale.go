package sale

import "time"

// Type says how a sale came to exist: rung up directly at the counter or
// materialized from a completed order.
type Type string

const (
	TypeDirect Type = "direct"
	TypeOrder  Type = "order"
)

// Item is one sold line item. Price is the unit price in centimes.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Sale is a finalized monetary transaction. All amounts are centimes.
type Sale struct {
	ID              string    `json:"id"`
	Items           []Item    `json:"items"`
	Subtotal        int64     `json:"subtotal"`
	Total           int64     `json:"total"`
	Discount        int64     `json:"discount"`
	PaymentReceived int64     `json:"paymentReceived"`
	Change          int64     `json:"change"`
	Date            time.Time `json:"date"`
	Cashier         string    `json:"cashier"`
	StoreLocation   string    `json:"storeLocation"`
	Type            Type      `json:"type"`
	OrderID         string    `json:"orderId,omitempty"`
	CustomerName    string    `json:"customerName,omitempty"`
	CompletedBy     string    `json:"completedBy"`
}
