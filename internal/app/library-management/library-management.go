// Package librarymanagement собирает приложение: хранилище, миграции,
// кеш, сервисы, маршруты и HTTP-сервер с мягкой остановкой.
package librarymanagement

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/library-management/internal/cache"
	"github.com/magabrotheeeer/library-management/internal/config"
	"github.com/magabrotheeeer/library-management/internal/migrations"
	bookservice "github.com/magabrotheeeer/library-management/internal/services/book"
	inventoryservice "github.com/magabrotheeeer/library-management/internal/services/inventory"
	loanservice "github.com/magabrotheeeer/library-management/internal/services/loan"
	reportservice "github.com/magabrotheeeer/library-management/internal/services/report"
	userservice "github.com/magabrotheeeer/library-management/internal/services/user"
	"github.com/magabrotheeeer/library-management/internal/storage/repository"
)

// App агрегирует HTTP-сервер и подключения к внешним сервисам.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New инициализирует приложение: подключается к PostgreSQL, применяет
// миграции, подключается к Redis и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	userService := userservice.NewUserService(db, cacheRedis, logger)
	bookService := bookservice.NewBookService(db, cacheRedis, logger)
	inventoryService := inventoryservice.NewInventoryService(db, cacheRedis, logger)
	loanService := loanservice.NewLoanService(db, db, db, inventoryService, logger)
	reportService := reportservice.NewReportService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, userService, bookService, loanService, reportService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if dbErr := a.db.DB.Close(); dbErr != nil {
			a.logger.Error("failed to close database", slog.Any("err", dbErr))
		}
		return err
	}
}
