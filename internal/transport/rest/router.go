package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/budget-tracker/internal/auth"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	"github.com/frahmantamala/budget-tracker/internal/export"
	"github.com/frahmantamala/budget-tracker/internal/ledger"
	"github.com/frahmantamala/budget-tracker/internal/notification"
	"github.com/frahmantamala/budget-tracker/internal/report"
	"github.com/frahmantamala/budget-tracker/internal/transport/middleware"
	"github.com/frahmantamala/budget-tracker/internal/transport/swagger"
)

type Handlers struct {
	Auth          *auth.Handler
	Expenses      *ledger.Handler
	Reports       *report.Handler
	Budgets       *budget.Handler
	Export        *export.Handler
	Notifications *notification.Handler
	Health        *HealthHandler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	// OpenAPI spec at root, Swagger UI alongside
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health.healthCheckHandler)
		r.Get("/ping", h.Health.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid bearer token.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)

			pr.Route("/expenses", func(er chi.Router) {
				er.Post("/", h.Expenses.CreateExpense)
				er.Get("/", h.Expenses.ListExpenses)
				er.Put("/{id}", h.Expenses.UpdateExpense)
				er.Delete("/{id}", h.Expenses.DeleteExpense)
			})

			pr.Get("/summary", h.Reports.GetSummary)
			pr.Get("/balance", h.Reports.GetBalance)

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", h.Budgets.GetLimits)
				br.Put("/{category}", h.Budgets.SetLimit)
				br.Get("/{category}/status", h.Budgets.GetStatus)
			})

			pr.Get("/reports/expenses.csv", h.Export.ExportExpensesCSV)
			pr.Get("/notifications", h.Notifications.GetNotifications)
		})
	})
}
