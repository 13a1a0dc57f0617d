package order

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentMethod is how the customer intends to pay.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentMobile       PaymentMethod = "mobile"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Item is one ordered line item. Price is the unit price in centimes.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order is a customer request for goods, tracked until fulfilled or
// cancelled. Amounts are centimes. Once SaleID is set the order has been
// sold and must never spawn a second sale.
type Order struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	ContactNumber   string        `json:"contactNumber"`
	Email           string        `json:"email"`
	DeliveryAddress string        `json:"deliveryAddress"`
	Items           []Item        `json:"items"`
	TotalAmount     int64         `json:"totalAmount"`
	FinalAmount     int64         `json:"finalAmount"`
	Status          Status        `json:"status"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	OrderDate       time.Time     `json:"orderDate"`
	Notes           string        `json:"notes,omitempty"`
	CreatedBy       string        `json:"createdBy,omitempty"`
	CompletedBy     string        `json:"completedBy,omitempty"`
	CompletedDate   *time.Time    `json:"completedDate,omitempty"`
	AdvancePayment  int64         `json:"advancePayment"`
	Discount        int64         `json:"discount"`
	SaleID          string        `json:"saleId,omitempty"`
}
