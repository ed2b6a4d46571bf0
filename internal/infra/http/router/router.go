// Package router assembles the chi route table.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/homewiz/homewiz-backend/internal/infra/http/handlers"
	"github.com/homewiz/homewiz-backend/internal/infra/http/middleware"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Operators *handlers.OperatorHandler
	Buildings *handlers.BuildingHandler
	Rooms     *handlers.RoomHandler
	Leads     *handlers.LeadHandler
	Tenants   *handlers.TenantHandler
	Reports   *handlers.ReportHandler
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func New(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", handlers.Root)
	r.Get("/health", h.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/operators", func(r chi.Router) {
			r.Post("/", h.Operators.Create)
			r.Get("/", h.Operators.List)
			r.Get("/{operatorId}", h.Operators.Get)
		})

		r.Route("/buildings", func(r chi.Router) {
			r.Post("/", h.Buildings.Create)
			r.Get("/", h.Buildings.List)
			r.Get("/{buildingId}", h.Buildings.Get)
			r.Post("/{buildingId}/rooms/generate", h.Buildings.GenerateRooms)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", h.Rooms.List)
			r.Get("/{roomId}", h.Rooms.Get)
			r.Post("/{roomId}/occupy", h.Rooms.Occupy)
			r.Post("/{roomId}/release", h.Rooms.Release)
		})

		r.Route("/leads", func(r chi.Router) {
			r.Post("/", h.Leads.Create)
			r.Get("/", h.Leads.List)
			r.Get("/{leadId}", h.Leads.Get)
			r.Post("/{leadId}/interest", h.Leads.RecordInterest)
			r.Post("/{leadId}/showings", h.Leads.ScheduleShowing)
			r.Post("/{leadId}/selection", h.Leads.SelectRoom)
			r.Post("/{leadId}/lost", h.Leads.MarkLost)
			r.Post("/{leadId}/convert", h.Leads.ConvertLead)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Post("/", h.Tenants.Create)
			r.Get("/", h.Tenants.List)
			r.Get("/{tenantId}", h.Tenants.Get)
			r.Post("/{tenantId}/end", h.Tenants.End)
			r.Post("/{tenantId}/payment-status", h.Tenants.UpdatePaymentStatus)
		})

		r.Get("/reports/rent-roll", h.Reports.RentRollXLSX)
	})

	return r
}
