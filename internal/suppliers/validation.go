package suppliers

import (
	"fmt"
	"strings"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

func validate(sup Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("%w: supplier name is required", httpx.ErrValidation)
	}
	if strings.TrimSpace(sup.Email) == "" {
		return fmt.Errorf("%w: supplier email is required", httpx.ErrValidation)
	}
	return nil
}
