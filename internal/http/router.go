package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/hearth/internal/http/auth"
	"github.com/MrJamesThe3rd/hearth/internal/http/budget"
	"github.com/MrJamesThe3rd/hearth/internal/http/family"
	authmw "github.com/MrJamesThe3rd/hearth/internal/http/middleware"
	"github.com/MrJamesThe3rd/hearth/internal/metrics"
)

type Options struct {
	AllowedOrigins []string
	Tokens         authmw.TokenValidator
	Metrics        *metrics.Metrics
}

func New(
	opts Options,
	authV1 *auth.Handler,
	familyV1 *family.Handler,
	budgetV1 *budget.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(opts.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Handle("/metrics", opts.Metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(opts.Tokens))

			r.Route("/profile", familyV1.ProfileRoutes)
			r.Route("/group", familyV1.Routes)
			r.Route("/categories", budgetV1.CategoryRoutes)
			r.Route("/goals", budgetV1.GoalRoutes)
		})
	})

	return router
}
