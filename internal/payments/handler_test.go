package payments

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func newTestRouter(totals map[int64]float64) (chi.Router, *Service) {
	svc, _ := newTestService(totals)
	h := NewHandler(nil, svc)
	r := chi.NewRouter()
	r.Route("/supplierpayments", h.MountRoutes)
	return r, svc
}

func do(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLedgerStatusCodes(t *testing.T) {
	router, _ := newTestRouter(map[int64]float64{7: 1000, 8: 500})

	rec := do(t, router, http.MethodPost, "/supplierpayments", `{"purchaseOrderId":7,"paymentMethod":"cash"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate ledger for the same order is a 400, not a 409.
	rec = do(t, router, http.MethodPost, "/supplierpayments", `{"purchaseOrderId":7,"paymentMethod":"cash"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing method.
	rec = do(t, router, http.MethodPost, "/supplierpayments", `{"purchaseOrderId":8}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown purchase order.
	rec = do(t, router, http.MethodPost, "/supplierpayments", `{"purchaseOrderId":99,"paymentMethod":"cash"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Amount above the order total.
	rec = do(t, router, http.MethodPost, "/supplierpayments", `{"purchaseOrderId":8,"paymentMethod":"cash","givenAmount":600}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddPaymentStatusCodes(t *testing.T) {
	router, svc := newTestRouter(map[int64]float64{7: 1000})

	created, err := svc.Create(context.Background(), CreateInput{PurchaseOrderID: 7, Method: "cash"})
	require.NoError(t, err)
	path := fmt.Sprintf("/supplierpayments/%d", created.ID)

	rec := do(t, router, http.MethodPut, path, `{"givenAmount":400}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Over the remaining unpaid amount.
	rec = do(t, router, http.MethodPut, path, `{"givenAmount":700}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, path, `{"givenAmount":600}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// A Paid ledger is frozen; mutating it is a 400, not a 409.
	rec = do(t, router, http.MethodPut, path, `{"givenAmount":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPut, "/supplierpayments/999", `{"givenAmount":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadAndDeleteStatusCodes(t *testing.T) {
	router, svc := newTestRouter(map[int64]float64{7: 1000})

	created, err := svc.Create(context.Background(), CreateInput{PurchaseOrderID: 7, Method: "cash"})
	require.NoError(t, err)

	rec := do(t, router, http.MethodGet, fmt.Sprintf("/supplierpayments/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/supplierpayments/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Empty filter results are reported as 404.
	rec = do(t, router, http.MethodGet, "/supplierpayments/status/paid", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/supplierpayments/method/crypto", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/supplierpayments/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodDelete, fmt.Sprintf("/supplierpayments/%d", created.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
