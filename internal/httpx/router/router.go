// Package router arma el árbol de rutas y el orden de middlewares:
// RequestID -> Logging -> Metrics -> IPBinding -> (por ruta) RequireAuth.
// El guard de IP binding corre para TODO request con bearer, también los
// públicos; RequireAuth sólo donde la ruta lo exige.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/dotcart/internal/httpx"
	"github.com/dropDatabas3/dotcart/internal/httpx/handlers"
	"github.com/dropDatabas3/dotcart/internal/httpx/middlewares"
	jwtx "github.com/dropDatabas3/dotcart/internal/jwt"
)

type Deps struct {
	Issuer    *jwtx.Issuer
	Users     *handlers.UserHandlers
	Stores    *handlers.StoreHandlers
	Products  *handlers.ProductHandlers
	Brands    *handlers.BrandHandlers
	Addresses *handlers.AddressHandlers
	Health    *handlers.HealthHandlers
	Metrics   http.Handler
}

func New(d Deps) http.Handler {
	r := chi.NewRouter()

	auth := middlewares.RequireAuth(d.Issuer)

	r.Get("/healthz", d.Health.Healthz)
	r.Get("/readyz", d.Health.Readyz)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", d.Users.Register)
		r.Post("/login", d.Users.Login)
		r.Get("/confirm-email", d.Users.ConfirmEmail)
		r.Get("/reset-password-request", d.Users.ResetPasswordRequest)
		r.Post("/reset-password", d.Users.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Put("/change-password", d.Users.ChangePassword)
			r.Put("/profile", d.Users.UpdateProfile)
			r.Get("/{id}", d.Users.GetByID)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/api/stores", func(r chi.Router) {
			r.Get("/", d.Stores.List)
			r.Post("/", d.Stores.Create)
			r.Get("/{id}", d.Stores.Get)
			r.Put("/{id}", d.Stores.Update)
			r.Delete("/{id}", d.Stores.Delete)
			r.Get("/{id}/brands", d.Brands.ListByStore)
		})

		r.Route("/api/products", func(r chi.Router) {
			r.Get("/", d.Products.List)
			r.Post("/", d.Products.Create)
			r.Put("/{id}", d.Products.Update)
			r.Put("/{id}/deletion-status", d.Products.SetDeletionStatus)
		})

		r.Route("/api/brands", func(r chi.Router) {
			r.Get("/", d.Brands.List)
			r.Post("/", d.Brands.Create)
			r.Post("/store-assignment", d.Brands.Assign)
			r.Delete("/store-assignment", d.Brands.Unassign)
		})

		r.Route("/api/addresses", func(r chi.Router) {
			r.Get("/", d.Addresses.List)
			r.Post("/", d.Addresses.Create)
			r.Put("/{id}", d.Addresses.Update)
			r.Delete("/{id}", d.Addresses.Delete)
		})
	})

	// stack global, de afuera hacia adentro
	return middlewares.Chain(r,
		middlewares.WithRequestID(),
		middlewares.WithLogging(),
		httpx.WithMetrics,
		middlewares.IPBinding(),
	)
}
