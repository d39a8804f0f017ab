package app

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/strokesheet/internal/data/db"
	"github.com/yungbote/strokesheet/internal/http"
	httpH "github.com/yungbote/strokesheet/internal/http/handlers"
	"github.com/yungbote/strokesheet/internal/modules/practice/sheet"
	"github.com/yungbote/strokesheet/internal/observability"
	"github.com/yungbote/strokesheet/internal/platform/logger"
)

type App struct {
	Log     *logger.Logger
	Cfg     Config
	DB      *db.Service
	Stores  Stores
	Sheets  sheet.Service
	Clients Clients
	Metrics *observability.Metrics
	Server  *http.Server

	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context) (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "strokesheetd",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	a.Metrics = observability.Init(log)

	a.Stores, a.DB, err = LoadStores(ctx, log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Sheets, err = NewSheetService(log, cfg, a.Stores)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Clients, err = wireClients(log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Server = http.NewServer(http.RouterConfig{
		Log:           log,
		Metrics:       a.Metrics,
		CORSOrigins:   cfg.CORSOrigins,
		HealthHandler: httpH.NewHealthHandler(),
		SheetHandler: httpH.NewSheetHandlerWithDeps(httpH.SheetHandlerDeps{
			Log:               log,
			Sheets:            a.Sheets,
			Cache:             a.Clients.SheetCache,
			Bucket:            a.Clients.Bucket,
			Metrics:           a.Metrics,
			DefaultCharacters: cfg.DefaultCharacters,
			DefaultCellSize:   cfg.DefaultCellSize,
			KeepArtifacts:     cfg.KeepArtifacts,
		}),
	})
	return a, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Listening", "addr", addr)
	return a.Server.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(context.Background())
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
