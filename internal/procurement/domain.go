package procurement

import "time"

// PurchaseOrder is an order placed with a supplier. TotalAmount is fixed
// once created; the payment ledger reads it as the authoritative total.
type PurchaseOrder struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	SupplierID   int64     `json:"supplierId"`
	PurchaseDate time.Time `json:"purchaseDate"`
	TotalAmount  float64   `json:"totalAmount"`
	Note         string    `json:"note"`
	PurchasedBy  int64     `json:"purchasedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// OrderItem is a line on a purchase order.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// OrderWithItems bundles a header with its lines.
type OrderWithItems struct {
	PurchaseOrder
	Items []OrderItem `json:"items"`
}

// CreateOrderInput describes an order creation payload. When Items are
// present TotalAmount is computed from them; an itemless order takes the
// provided total as-is.
type CreateOrderInput struct {
	Number       string
	SupplierID   int64
	PurchaseDate time.Time
	TotalAmount  float64
	Note         string
	PurchasedBy  int64
	Items        []OrderItemInput
}

// OrderItemInput describes one requested line.
type OrderItemInput struct {
	ProductID int64
	Name      string
	Qty       float64
	Price     float64
}

// UpdateOrderInput carries mutable header fields. TotalAmount is not
// among them.
type UpdateOrderInput struct {
	PurchaseDate time.Time
	Note         string
	PurchasedBy  int64
}
