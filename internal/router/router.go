// Package router sets up all HTTP routes and middleware chains for the
// toolshop server. It organizes routes into the public catalog and the admin
// JSON API, each with its own middleware stack.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"toolshop/internal/handlers"
	"toolshop/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. limiter may be nil to leave admin writes
// unlimited.
func New(admin *handlers.Admin, public *handlers.Public, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	// Admin JSON API.
	r.Route(middleware.APIPrefix, func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.RequireJSON)
		if limiter != nil {
			r.Use(limiter.Writes)
		}
		r.NotFound(apiError(http.StatusNotFound, "not found"))
		r.MethodNotAllowed(apiError(http.StatusMethodNotAllowed, "method not allowed"))

		r.Get("/", admin.Dashboard)
		r.Get("/meta/choices", admin.Choices)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admin.ListCategories)
			r.Post("/", admin.CreateCategory)
			r.Get("/tree", admin.CategoryTree)
			r.Post("/reorder", admin.ReorderCategories)
			r.Get("/{id}", admin.GetCategory)
			r.Put("/{id}", admin.UpdateCategory)
			r.Delete("/{id}", admin.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", admin.ListProducts)
			r.Post("/", admin.CreateProduct)
			r.Patch("/", admin.BulkUpdateProducts)
			r.Get("/filters", admin.ProductFilters)
			r.Get("/{id}", admin.GetProduct)
			r.Put("/{id}", admin.UpdateProduct)
			r.Delete("/{id}", admin.DeleteProduct)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", admin.ListOrders)
			r.Post("/", admin.CreateOrder)
			r.Get("/{id}", admin.GetOrder)
			r.Put("/{id}", admin.UpdateOrder)
			r.Delete("/{id}", admin.DeleteOrder)
			r.Put("/{id}/status", admin.SetOrderStatus)
			r.Patch("/{id}/payments/{paymentID}", admin.UpdateOrderPayment)
		})

		r.Get("/order-items", admin.ListOrderItems)

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", admin.ListPayments)
			r.Post("/", admin.CreatePayment)
			r.Get("/{id}", admin.GetPayment)
			r.Put("/{id}", admin.UpdatePayment)
			r.Delete("/{id}", admin.DeletePayment)
		})

		r.Route("/accounting", func(r chi.Router) {
			r.Get("/", admin.ListEntries)
			r.Post("/", admin.CreateEntry)
			r.Get("/totals", admin.LedgerTotals)
			r.Get("/{id}", admin.GetEntry)
			r.Put("/{id}", admin.UpdateEntry)
			r.Delete("/{id}", admin.DeleteEntry)
		})
	})

	// Public catalog.
	r.Get("/", public.Catalog)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// apiError returns a handler that writes a fixed JSON error.
func apiError(status int, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	}
}
