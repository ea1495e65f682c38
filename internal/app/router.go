package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/atlas-retail/atlas-retail/internal/addresses"
	"github.com/atlas-retail/atlas-retail/internal/auth"
	"github.com/atlas-retail/atlas-retail/internal/loyalty"
	"github.com/atlas-retail/atlas-retail/internal/payments"
	"github.com/atlas-retail/atlas-retail/internal/procurement"
	"github.com/atlas-retail/atlas-retail/internal/sales"
	"github.com/atlas-retail/atlas-retail/internal/suppliers"
	"github.com/atlas-retail/atlas-retail/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	AuthHandler        *auth.Handler
	AuthMiddleware     auth.Middleware
	UsersHandler       *users.Handler
	SuppliersHandler   *suppliers.Handler
	AddressesHandler   *addresses.Handler
	ProcurementHandler *procurement.Handler
	PaymentsHandler    *payments.Handler
	SalesHandler       *sales.Handler
	LoyaltyHandler     *loyalty.Handler
}

// NewRouter constructs the chi.Router with gateway defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(params.AuthMiddleware.RequireAuth)

		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/addresses", params.AddressesHandler.MountRoutes)
		r.Route("/purchaseorders", params.ProcurementHandler.MountRoutes)
		r.Route("/supplierpayments", params.PaymentsHandler.MountRoutes)
		r.Route("/sales", params.SalesHandler.MountRoutes)
		r.Route("/loyalty", params.LoyaltyHandler.MountRoutes)
	})

	return r
}
