package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/fcsolar/pos/internal/activity"
	activityStore "github.com/fcsolar/pos/internal/activity/store"
	"github.com/fcsolar/pos/internal/auth"
	"github.com/fcsolar/pos/internal/config"
	posHttp "github.com/fcsolar/pos/internal/http"
	authHandler "github.com/fcsolar/pos/internal/http/auth"
	orderHandler "github.com/fcsolar/pos/internal/http/order"
	reportHandler "github.com/fcsolar/pos/internal/http/report"
	saleHandler "github.com/fcsolar/pos/internal/http/sale"
	"github.com/fcsolar/pos/internal/identifier"
	"github.com/fcsolar/pos/internal/order"
	orderStore "github.com/fcsolar/pos/internal/order/store"
	"github.com/fcsolar/pos/internal/receipt"
	"github.com/fcsolar/pos/internal/report"
	"github.com/fcsolar/pos/internal/sale"
	saleStore "github.com/fcsolar/pos/internal/sale/store"
	"github.com/fcsolar/pos/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	blob, err := newBlobStore(cfg)
	if err != nil {
		slog.Error("failed to open storage backend", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	if closer, ok := blob.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	ctx := context.Background()
	ids := identifier.New()

	var (
		activityService = activity.NewService(activityStore.New(ctx, blob))
		saleService     = sale.NewService(saleStore.New(ctx, blob), ids, activityService, cfg.Store.Location)
		orderService    = order.NewService(orderStore.New(ctx, blob), saleService, activityService, ids)
		reportService   = report.NewService(orderService, saleService, activityService)
		authService     = auth.NewService(cfg.Auth.Secret, cfg.Auth.PIN, cfg.Auth.TokenTTL)
	)

	receipts := receipt.NewRenderer(receipt.StoreInfo{
		Name:         cfg.Store.Name,
		AddressLines: []string{cfg.Store.Address},
		Phone:        cfg.Store.Phone,
	})

	var (
		authH   = authHandler.NewHandler(authService, activityService)
		orderH  = orderHandler.NewHandler(orderService)
		saleH   = saleHandler.NewHandler(saleService, receipts)
		reportH = reportHandler.NewHandler(reportService)
	)

	router := posHttp.New(authService, authH, orderH, saleH, reportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "storage", cfg.Storage.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newBlobStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return storage.NewPostgresStore(cfg.ConnectionString())
	case "memory":
		return storage.NewMemStore(), nil
	case "file":
		return storage.NewFileStore(cfg.Storage.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
