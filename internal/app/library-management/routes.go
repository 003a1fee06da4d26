// Package librarymanagement предоставляет маршруты приложения.
package librarymanagement

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	bookadd "github.com/magabrotheeeer/library-management/internal/http/handlers/book/add"
	bookread "github.com/magabrotheeeer/library-management/internal/http/handlers/book/read"
	bookremove "github.com/magabrotheeeer/library-management/internal/http/handlers/book/remove"
	booksearch "github.com/magabrotheeeer/library-management/internal/http/handlers/book/search"
	bookupdate "github.com/magabrotheeeer/library-management/internal/http/handlers/book/update"
	"github.com/magabrotheeeer/library-management/internal/http/handlers/health"
	loanextend "github.com/magabrotheeeer/library-management/internal/http/handlers/loan/extend"
	loanhistory "github.com/magabrotheeeer/library-management/internal/http/handlers/loan/history"
	loanissue "github.com/magabrotheeeer/library-management/internal/http/handlers/loan/issue"
	loanoverdue "github.com/magabrotheeeer/library-management/internal/http/handlers/loan/overdue"
	loanreturns "github.com/magabrotheeeer/library-management/internal/http/handlers/loan/returns"
	reportactive "github.com/magabrotheeeer/library-management/internal/http/handlers/report/active"
	reportoverview "github.com/magabrotheeeer/library-management/internal/http/handlers/report/overview"
	reportpopular "github.com/magabrotheeeer/library-management/internal/http/handlers/report/popular"
	usercreate "github.com/magabrotheeeer/library-management/internal/http/handlers/user/create"
	userread "github.com/magabrotheeeer/library-management/internal/http/handlers/user/read"
	userupdate "github.com/magabrotheeeer/library-management/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/library-management/internal/http/middlewarectx"
	bookservice "github.com/magabrotheeeer/library-management/internal/services/book"
	loanservice "github.com/magabrotheeeer/library-management/internal/services/loan"
	reportservice "github.com/magabrotheeeer/library-management/internal/services/report"
	userservice "github.com/magabrotheeeer/library-management/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	userService *userservice.UserService,
	bookService *bookservice.BookService,
	loanService *loanservice.LoanService,
	reportService *reportservice.ReportService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.RateLimitMiddleware(logger),
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", usercreate.New(logger, userService).ServeHTTP)
			r.Get("/{id}", userread.New(logger, userService).ServeHTTP)
			r.Put("/{id}", userupdate.New(logger, userService).ServeHTTP)
		})

		r.Route("/books", func(r chi.Router) {
			r.Post("/", bookadd.New(logger, bookService).ServeHTTP)
			r.Get("/", booksearch.New(logger, bookService).ServeHTTP)
			r.Get("/{id}", bookread.New(logger, bookService).ServeHTTP)
			r.Put("/{id}", bookupdate.New(logger, bookService).ServeHTTP)
			r.Delete("/{id}", bookremove.New(logger, bookService).ServeHTTP)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Post("/", loanissue.New(logger, loanService).ServeHTTP)
			r.Post("/returns", loanreturns.New(logger, loanService).ServeHTTP)
			r.Get("/overdue", loanoverdue.New(logger, loanService).ServeHTTP)
			r.Get("/books/popular", reportpopular.New(logger, reportService).ServeHTTP)
			r.Get("/users/active", reportactive.New(logger, reportService).ServeHTTP)
			r.Get("/overview", reportoverview.New(logger, reportService).ServeHTTP)
			r.Get("/{user_id}", loanhistory.New(logger, loanService).ServeHTTP)
			r.Put("/{id}/extend", loanextend.New(logger, loanService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
