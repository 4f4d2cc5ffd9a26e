package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/hearth/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/hearth/internal/budget/store"
	"github.com/MrJamesThe3rd/hearth/internal/config"
	"github.com/MrJamesThe3rd/hearth/internal/database"
	"github.com/MrJamesThe3rd/hearth/internal/family"
	familyStore "github.com/MrJamesThe3rd/hearth/internal/family/store"
	hearthHttp "github.com/MrJamesThe3rd/hearth/internal/http"
	authHandler "github.com/MrJamesThe3rd/hearth/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/hearth/internal/http/budget"
	familyHandler "github.com/MrJamesThe3rd/hearth/internal/http/family"
	"github.com/MrJamesThe3rd/hearth/internal/identity"
	identityStore "github.com/MrJamesThe3rd/hearth/internal/identity/store"
	"github.com/MrJamesThe3rd/hearth/internal/logging"
	"github.com/MrJamesThe3rd/hearth/internal/metrics"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.App.LogLevel)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	tokens := identity.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	var (
		identityService = identity.NewService(identityStore.New(db), tokens)
		familyService   = family.NewService(familyStore.New(db), identityService)
		budgetService   = budget.NewService(budgetStore.New(db), familyService)
	)

	var (
		authH   = authHandler.NewHandler(identityService)
		familyH = familyHandler.NewHandler(familyService, budgetService)
		budgetH = budgetHandler.NewHandler(budgetService)
	)

	router := hearthHttp.New(hearthHttp.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Tokens:         tokens,
		Metrics:        metrics.New(),
	}, authH, familyH, budgetH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
