package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// EmailSender is the delivery dependency of the receipt job.
type EmailSender interface {
	Send(to, subject, body string) error
}

// ReceiptJob emails a receipt for a recorded supplier payment.
type ReceiptJob struct {
	mailer EmailSender
	inbox  string
	logger *slog.Logger
}

// NewReceiptJob initialises the receipt handler. Receipts go to the
// finance inbox; supplier contacts are not stored on the ledger.
func NewReceiptJob(mailer EmailSender, inbox string, logger *slog.Logger) *ReceiptJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptJob{mailer: mailer, inbox: inbox, logger: logger}
}

// Handle executes TaskTypePaymentReceipt tasks.
func (j *ReceiptJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.mailer == nil {
		return errors.New("receipt job: not configured")
	}
	var payload PaymentReceiptPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	subject := fmt.Sprintf("Payment recorded for purchase order #%d", payload.PurchaseOrderID)
	body := fmt.Sprintf(
		"A payment of %.2f was recorded on %s for purchase order #%d.\n\n"+
			"Order total: %.2f\nPaid so far: %.2f\nRemaining:   %.2f\nStatus:      %s\nMethod:      %s\n",
		payload.GivenAmount, payload.PaymentDate.Format("2006-01-02"), payload.PurchaseOrderID,
		payload.TotalAmount, payload.PaidAmount, payload.UnpaidAmount, payload.Status, payload.Method)

	if err := j.mailer.Send(j.inbox, subject, body); err != nil {
		j.logger.Error("send receipt", slog.Any("error", err), slog.Int64("payment_id", payload.PaymentID))
		return err
	}
	j.logger.Info("receipt sent",
		slog.Int64("payment_id", payload.PaymentID),
		slog.Int64("purchase_order_id", payload.PurchaseOrderID),
		slog.String("status", payload.Status),
	)
	return nil
}
