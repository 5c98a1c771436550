// Package rest exposes the application over HTTP.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"bookshop/application/services"
	"bookshop/interfaces/http/rest/handlers"
	"bookshop/interfaces/http/rest/middleware"
	apperrors "bookshop/pkg/errors"
)

// Router creates and configures the HTTP router
type Router struct {
	books   *services.BookService
	authors *services.AuthorService
	reviews *services.ReviewService
	logs    *services.LogService
	tasks   *services.LogTaskService
	counter *services.CounterService
	logger  *zap.Logger
	debug   bool
}

// NewRouter creates a new router instance
func NewRouter(
	books *services.BookService,
	authors *services.AuthorService,
	reviews *services.ReviewService,
	logs *services.LogService,
	tasks *services.LogTaskService,
	counter *services.CounterService,
	logger *zap.Logger,
	debug bool,
) *Router {
	return &Router{
		books:   books,
		authors: authors,
		reviews: reviews,
		logs:    logs,
		tasks:   tasks,
		counter: counter,
		logger:  logger,
		debug:   debug,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	errorHandler := apperrors.NewErrorHandler(rt.logger, rt.debug)

	// Health check
	router.Get("/health", rt.healthCheck)

	// Book endpoints
	router.Route("/books", func(r chi.Router) {
		bookHandler := handlers.NewBookHandler(rt.books, errorHandler, rt.logger)
		r.Get("/", bookHandler.FindByTitle)
		r.Get("/all", bookHandler.FindAll)
		r.Get("/find", bookHandler.FindByAuthorName)
		r.Get("/find/reviews", bookHandler.FindByReviewCount)
		r.Post("/", bookHandler.Create)
		r.Post("/bulk", bookHandler.CreateBulk)
		r.Get("/{id}", bookHandler.GetByID)
		r.Put("/{id}", bookHandler.Update)
		r.Delete("/{id}", bookHandler.Delete)

		// Author endpoints, always addressed through a book
		r.Route("/{bookID}/authors", func(r chi.Router) {
			authorHandler := handlers.NewAuthorHandler(rt.authors, rt.books, errorHandler, rt.logger)
			r.Get("/", authorHandler.ListForBook)
			r.Get("/all", authorHandler.ListAll)
			r.Post("/", authorHandler.Create)
			r.Get("/{authorID}", authorHandler.GetByID)
			r.Put("/{authorID}", authorHandler.Update)
			r.Delete("/{authorID}", authorHandler.Delete)
		})

		// Review endpoints for a book
		r.Route("/{bookID}/reviews", func(r chi.Router) {
			reviewHandler := handlers.NewReviewHandler(rt.reviews, errorHandler, rt.logger)
			r.Get("/", reviewHandler.ListForBook)
			r.Post("/", reviewHandler.Create)
			r.Put("/{reviewID}", reviewHandler.Update)
			r.Delete("/{reviewID}", reviewHandler.Delete)
		})
	})

	// All reviews across books
	router.Get("/reviews", handlers.NewReviewHandler(rt.reviews, errorHandler, rt.logger).ListAll)

	// Log excerpt endpoints
	router.Route("/logs", func(r chi.Router) {
		logHandler := handlers.NewLogHandler(rt.logs, rt.tasks, errorHandler, rt.logger)
		r.Get("/", logHandler.Slice)
		r.Post("/tasks", logHandler.SubmitTask)
		r.Get("/tasks/{id}", logHandler.GetTask)
		r.Get("/tasks/{id}/file", logHandler.GetTaskFile)
	})

	// Visit counter
	counterHandler := handlers.NewCounterHandler(rt.counter)
	router.Get("/visit", counterHandler.Visit)
	router.Get("/visit/count", counterHandler.Count)

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
