package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(ingestionHandler IngestionHandler, kpiHandler KpiHandler, revenueHandler RevenueHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kep-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/timesheets", func(r chi.Router) {
			r.Post("/upload", ingestionHandler.Upload)
			r.Get("/entries", ingestionHandler.ListEntries)
		})

		r.Route("/kpis", func(r chi.Router) {
			r.Get("/", kpiHandler.Compute)
			r.Get("/codes", kpiHandler.ListCodes)

			r.Route("/manual", func(r chi.Router) {
				r.Get("/", kpiHandler.ListManualInputs)
				r.Post("/", kpiHandler.CreateManualInput)
				r.Get("/{id}", kpiHandler.GetManualInput)
			})

			r.Route("/targets", func(r chi.Router) {
				r.Get("/", kpiHandler.ListTargets)
				r.Post("/", kpiHandler.CreateTarget)
				r.Put("/{id}", kpiHandler.UpdateTarget)
				r.Delete("/{id}", kpiHandler.DeleteTarget)
			})
		})

		r.Route("/revenues", func(r chi.Router) {
			r.Get("/", revenueHandler.List)
			r.Post("/", revenueHandler.Create)
			r.Get("/activities", revenueHandler.ListActivities)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
		})
	})
	return r
}
