package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskTypeSendEmail sends a transactional email.
	TaskTypeSendEmail = "mail:send"
	// TaskTypePaymentReceipt emails a supplier payment receipt.
	TaskTypePaymentReceipt = "payment:receipt"
	// TaskTypeLedgerReminder scans for stale outstanding ledgers.
	TaskTypeLedgerReminder = "ledger:reminder"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// PaymentReceiptPayload carries the ledger snapshot at send time.
type PaymentReceiptPayload struct {
	PaymentID       int64     `json:"paymentId"`
	PurchaseOrderID int64     `json:"purchaseOrderId"`
	TotalAmount     float64   `json:"totalAmount"`
	PaidAmount      float64   `json:"paidAmount"`
	UnpaidAmount    float64   `json:"unpaidAmount"`
	GivenAmount     float64   `json:"givenAmount"`
	Status          string    `json:"status"`
	Method          string    `json:"method"`
	PaymentDate     time.Time `json:"paymentDate"`
}

// NewPaymentReceiptTask constructs a receipt task.
func NewPaymentReceiptTask(payload PaymentReceiptPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePaymentReceipt, data), nil
}

// LedgerReminderPayload configures one reminder scan run.
type LedgerReminderPayload struct {
	OlderThanDays int `json:"olderThanDays"`
}

// NewLedgerReminderTask constructs a reminder scan task.
func NewLedgerReminderTask(olderThanDays int) (*asynq.Task, error) {
	data, err := json.Marshal(LedgerReminderPayload{OlderThanDays: olderThanDays})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLedgerReminder, data), nil
}
