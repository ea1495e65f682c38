package sales

import "time"

// Sale is a completed storefront transaction recorded by staff.
type Sale struct {
	ID           int64     `json:"id"`
	Number       string    `json:"number"`
	CustomerName string    `json:"customerName"`
	Subtotal     float64   `json:"subtotal"`
	Discount     float64   `json:"discount"`
	Total        float64   `json:"total"`
	PaidVia      string    `json:"paidVia"`
	SoldBy       int64     `json:"soldBy"`
	SoldAt       time.Time `json:"soldAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaleItem is one sold line.
type SaleItem struct {
	ID        int64   `json:"id"`
	SaleID    int64   `json:"saleId"`
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Qty       float64 `json:"qty"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// SaleWithItems bundles a sale with its lines.
type SaleWithItems struct {
	Sale
	Items []SaleItem `json:"items"`
}

// CreateSaleInput describes a sale creation payload.
type CreateSaleInput struct {
	CustomerName string
	Discount     float64
	PaidVia      string
	SoldBy       int64
	SoldAt       time.Time
	Items        []SaleItemInput
}

// SaleItemInput describes one sold line.
type SaleItemInput struct {
	ProductID int64
	Name      string
	Qty       float64
	Price     float64
}
