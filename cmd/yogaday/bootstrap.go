package main

import (
	"context"
	"fmt"

	"yogaday/local-app/internal/adapter"
	"yogaday/local-app/internal/config"
	"yogaday/local-app/internal/data"
	"yogaday/local-app/internal/log"
	"yogaday/local-app/internal/model"
	"yogaday/local-app/internal/session"
	"yogaday/local-app/internal/storage"
)

// application holds the initialized components of one program run
type application struct {
	cfg            *model.Config
	logger         *log.Logger
	dataManager    *data.DataManager
	sessionManager *session.SessionManager
	adapterManager *adapter.AdapterManager
}

// bootstrap loads the configuration and initializes logger, storage, data
// manager, session manager and adapter manager, in that order.
// A non-empty logLevel overrides the configured level.
func bootstrap(configPath, logLevel string) (*application, error) {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.ConfigLoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Initialize logger
	logger, err := log.NewLogger(cfg, log.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info(ctx, "Application started", log.Fields{"config": config.ConfigPath(), "database": cfg.DatabaseType})

	app := &application{cfg: cfg, logger: logger}

	// Initialize storage
	kv, err := storage.NewStorage(cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize storage", log.Fields{"error": err})
		app.close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	store, err := storage.NewLibraryStore(kv, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize library store", log.Fields{"error": err})
		kv.Close()
		app.close()
		return nil, fmt.Errorf("failed to initialize library store: %w", err)
	}
	logger.Info(ctx, "Storage initialized", nil)

	// Initialize data manager
	app.dataManager, err = data.NewDataManager(store, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize data manager", log.Fields{"error": err})
		store.Close()
		app.close()
		return nil, fmt.Errorf("failed to initialize data manager: %w", err)
	}
	logger.Info(ctx, "Data manager initialized", nil)

	// Initialize session manager
	app.sessionManager = session.NewSessionManager(app.dataManager, logger)
	logger.Info(ctx, "Session manager initialized", nil)

	// Initialize adapter manager
	app.adapterManager, err = adapter.NewAdapterManager(app.sessionManager, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize adapter manager", log.Fields{"error": err})
		app.close()
		return nil, fmt.Errorf("failed to initialize adapter manager: %w", err)
	}
	logger.Info(ctx, "Adapter manager initialized", nil)

	return app, nil
}

// close shuts the components down in reverse order
func (a *application) close() {
	ctx := context.Background()
	if a.adapterManager != nil {
		a.adapterManager.Shutdown()
	}
	if a.sessionManager != nil {
		a.sessionManager.Stop()
	}
	if a.dataManager != nil {
		if err := a.dataManager.Close(); err != nil {
			a.logger.Error(ctx, "Failed to close storage", log.Fields{"error": err})
		}
	}
	a.logger.Info(ctx, "Application shutting down", nil)
	if err := a.logger.Close(); err != nil {
		fmt.Printf("Failed to close logger: %v\n", err)
	}
}

// cliAdapter registers a CLI adapter with the adapter manager
func (a *application) cliAdapter() (*adapter.CLIAdapter, error) {
	cliAdapter, err := adapter.NewCLIAdapter(a.adapterManager, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize CLI adapter: %w", err)
	}
	if err := a.adapterManager.AdapterAdd(cliAdapter); err != nil {
		return nil, err
	}
	if err := cliAdapter.AdapterStart(); err != nil {
		return nil, fmt.Errorf("failed to start CLI adapter: %w", err)
	}
	return cliAdapter, nil
}
