package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/atlas-retail/atlas-retail/internal/payments"
)

// LedgerSource lists outstanding payment ledgers for the reminder scan.
type LedgerSource interface {
	ListOutstandingOlderThan(ctx context.Context, cutoff time.Time) ([]payments.SupplierPayment, error)
}

// ReminderJob emails the finance inbox about ledgers that are still
// Unpaid or Partial past the configured age.
type ReminderJob struct {
	ledgers LedgerSource
	mailer  EmailSender
	inbox   string
	logger  *slog.Logger
	clock   func() time.Time
}

func NewReminderJob(ledgers LedgerSource, mailer EmailSender, inbox string, logger *slog.Logger) *ReminderJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderJob{
		ledgers: ledgers,
		mailer:  mailer,
		inbox:   inbox,
		logger:  logger,
		clock:   func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes TaskTypeLedgerReminder tasks.
func (j *ReminderJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.ledgers == nil {
		return errors.New("reminder job: not configured")
	}
	var payload LedgerReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.OlderThanDays <= 0 {
		payload.OlderThanDays = 7
	}

	cutoff := j.clock().AddDate(0, 0, -payload.OlderThanDays)
	outstanding, err := j.ledgers.ListOutstandingOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("reminder scan", slog.Any("error", err))
		return err
	}
	j.logger.Info("reminder scan", slog.Int("outstanding", len(outstanding)), slog.Time("cutoff", cutoff))
	if len(outstanding) == 0 || j.mailer == nil {
		return nil
	}

	body := fmt.Sprintf("%d supplier payment(s) have been outstanding for more than %d days:\n\n",
		len(outstanding), payload.OlderThanDays)
	for _, p := range outstanding {
		body += fmt.Sprintf("- ledger #%d (PO #%d): %.2f of %.2f paid, %.2f remaining [%s]\n",
			p.ID, p.PurchaseOrderID, p.PaidAmount, p.TotalAmount, p.UnpaidAmount, p.Status)
	}
	subject := fmt.Sprintf("%d outstanding supplier payments need attention", len(outstanding))
	if err := j.mailer.Send(j.inbox, subject, body); err != nil {
		j.logger.Error("send reminder", slog.Any("error", err))
		return err
	}
	return nil
}
