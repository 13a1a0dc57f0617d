package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fcsolar/pos/internal/auth"
	authhttp "github.com/fcsolar/pos/internal/http/auth"
	"github.com/fcsolar/pos/internal/http/order"
	"github.com/fcsolar/pos/internal/http/report"
	"github.com/fcsolar/pos/internal/http/sale"
)

func New(
	authSvc *auth.Service,
	authV1 *authhttp.Handler,
	ordersV1 *order.Handler,
	salesV1 *sale.Handler,
	reportsV1 *report.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(authSvc))

			r.Route("/orders", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				ordersV1.Routes(r)
			})

			r.Route("/sales", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				salesV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
		})
	})

	return router
}
