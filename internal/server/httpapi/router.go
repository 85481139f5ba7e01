package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the API surface:
//
//	POST /api/auth/login
//	POST /api/auth/forgot_password
//	POST /api/auth/reset_password
//	POST /api/users
//	GET  /api/products
//	POST /api/products
//	GET  /api/products/{id}
//	PUT  /api/products/{id}   (admin)
//	PATCH /api/products/{id}  (admin)
//	DELETE /api/products/{id} (admin)
//	GET  /healthz
func NewRouter(authHandler *AuthHandler, userHandler *UserHandler, productHandler *ProductHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/forgot_password", authHandler.ForgotPassword)
			r.Post("/reset_password", authHandler.ResetPassword)
		})

		r.Post("/users", userHandler.Register)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.Index)
			r.Post("/", productHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", productHandler.Show)
				r.Put("/", productHandler.Update)
				r.Patch("/", productHandler.Update)
				r.Delete("/", productHandler.Delete)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
