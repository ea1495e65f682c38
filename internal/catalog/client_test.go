package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
)

func TestProductLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/42":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":42,"name":"Espresso Beans","sku":"EB-1","price":12.5}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	product, err := client.Product(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Espresso Beans", product.Name)

	name, err := client.ProductName(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "Espresso Beans", name)

	_, err = client.Product(context.Background(), 99)
	require.True(t, errors.Is(err, httpx.ErrNotFound))
}

func TestProductUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Product(context.Background(), 1)
	require.Error(t, err)
	require.False(t, errors.Is(err, httpx.ErrNotFound))
}
