package payments

import "github.com/go-chi/chi/v5"

// MountRoutes registers the ledger endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/export.xlsx", h.exportXLSX)
	r.Get("/method/{method}", h.listByMethod)
	r.Get("/status/{status}", h.listByStatus)
	r.Get("/order/{orderId}", h.listByOrder)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.addPayment)
	r.Delete("/{id}", h.delete)
}
