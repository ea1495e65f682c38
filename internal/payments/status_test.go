package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name  string
		paid  float64
		total float64
		want  Status
	}{
		{"zero paid", 0, 1000, StatusUnpaid},
		{"partial", 400, 1000, StatusPartial},
		{"just under total", 999.99, 1000, StatusPartial},
		{"exactly total", 1000, 1000, StatusPaid},
		{"over total", 1001, 1000, StatusPaid},
		{"zero total zero paid", 0, 0, StatusPaid},
		{"smallest increment", 0.01, 1000, StatusPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DeriveStatus(tc.paid, tc.total))
		})
	}
}
