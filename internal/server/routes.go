package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/BuzzLyutic/lab-utils/internal/handler"
)

type Options struct {
	Lab         *handler.LabHandler
	Pages       *handler.PageHandler
	CORSOrigins []string
}

// NewRouter mounts every route. Page routes are skipped when opts.Pages is
// nil so the lab utilities can be served without a database.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/calc", func(r chi.Router) {
			r.Post("/sum", opts.Lab.Sum)
			r.Post("/divide", opts.Lab.Divide)
			r.Post("/average", opts.Lab.Average)
		})
		r.Get("/fib/{n}", opts.Lab.Fibonacci)
		r.Post("/echo", opts.Lab.Echo)
		r.Get("/tasks/empty", opts.Lab.EmptyTask)
		r.Route("/crawl", func(r chi.Router) {
			r.Post("/titles", opts.Lab.Titles)
			r.Post("/download", opts.Lab.Download)
		})

		if opts.Pages != nil {
			r.Route("/pages", func(r chi.Router) {
				r.Post("/", opts.Pages.Enqueue)
				r.Get("/", opts.Pages.List)
				r.Get("/stats", opts.Pages.Stats)
				r.Get("/{id}", opts.Pages.Get)
			})
		}
	})

	return r
}
