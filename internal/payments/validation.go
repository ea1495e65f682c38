package payments

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

type createPayload struct {
	PurchaseOrderID int64   `validate:"required,gt=0"`
	Method          string  `validate:"required"`
	GivenAmount     float64 `validate:"gte=0"`
}

type addPaymentPayload struct {
	GivenAmount float64 `validate:"gte=0"`
}

func validateCreate(v *validator.Validate, in CreateInput) error {
	payload := createPayload{
		PurchaseOrderID: in.PurchaseOrderID,
		Method:          in.Method,
		GivenAmount:     in.GivenAmount,
	}
	if err := v.Struct(payload); err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrValidation, firstViolation(err))
	}
	return nil
}

func validateAddPayment(v *validator.Validate, in AddPaymentInput) error {
	if err := v.Struct(addPaymentPayload{GivenAmount: in.GivenAmount}); err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrValidation, firstViolation(err))
	}
	return nil
}

func firstViolation(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag())
	}
	return err.Error()
}
