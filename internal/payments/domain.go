package payments

import "time"

// Status labels the settlement state of a ledger row.
type Status string

const (
	StatusUnpaid  Status = "Unpaid"
	StatusPartial Status = "Partial"
	StatusPaid    Status = "Paid"
)

// DeriveStatus computes the settlement status from the running balance.
// It is the single source of truth for the status field; every mutation
// site calls it instead of setting the status directly.
func DeriveStatus(paidAmount, totalAmount float64) Status {
	switch {
	case paidAmount >= totalAmount:
		return StatusPaid
	case paidAmount == 0:
		return StatusUnpaid
	default:
		return StatusPartial
	}
}

// SupplierPayment is the payment ledger for exactly one purchase order.
// TotalAmount is snapshotted from the order at creation and never
// re-synced. GivenAmount holds the last increment applied, not the
// cumulative total.
type SupplierPayment struct {
	ID              int64     `json:"id"`
	PurchaseOrderID int64     `json:"purchaseOrderId"`
	TotalAmount     float64   `json:"totalAmount"`
	PaidAmount      float64   `json:"paidAmount"`
	UnpaidAmount    float64   `json:"unpaidAmount"`
	GivenAmount     float64   `json:"givenAmount"`
	Status          Status    `json:"paymentStatus"`
	Method          string    `json:"paymentMethod"`
	PaymentDate     time.Time `json:"paymentDate"`
	PaidBy          int64     `json:"paidBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateInput describes the payload for opening a ledger.
type CreateInput struct {
	PurchaseOrderID int64
	Method          string
	GivenAmount     float64
	PaymentDate     time.Time
	PaidBy          int64
}

// AddPaymentInput describes a payment increment against an existing ledger.
// Method, PaymentDate and PaidBy are optional; zero values retain the
// previously stored ones.
type AddPaymentInput struct {
	GivenAmount float64
	Method      string
	PaymentDate time.Time
	PaidBy      int64
}
