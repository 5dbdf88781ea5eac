package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"user-crud-console/cmd/console/di"
	"user-crud-console/internal/config"
	"user-crud-console/pkg/logger"
)

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *di.Container
}

// New loads configuration, builds the logger and connects to the database.
// The session reads operator input from in and writes to out.
func New(ctx context.Context, in io.Reader, out io.Writer) (*App, error) {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// Create DI container
	container, err := di.NewContainer(ctx, cfg, l, in, out)
	if err != nil {
		l.Error("failed to start application", zap.Error(err), zap.Stack("stack"))
		_ = l.Sync()
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Container: container,
	}, nil
}

// Run drives the console session until the operator exits, input ends or
// ctx is canceled. Resources are released in every case.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", a.Config.Env),
		zap.String("driver", a.Config.DB.Driver),
		zap.Bool("cache_enabled", a.Config.Cache.Enabled),
	)

	// Run the session in a goroutine so a signal can interrupt a blocked read
	errChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.Logger.Error("panic recovered in session",
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				errChan <- fmt.Errorf("session panic: %v", r)
			}
		}()

		errChan <- a.Container.Session.Run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("interrupted, shutting down application...")
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			a.Logger.Error("session ended with error", zap.Error(err))
			runErr = fmt.Errorf("session error: %w", err)
		}
	}

	if err := a.shutdown(); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w; %w", runErr, err)
		}
		return err
	}

	return runErr
}

// shutdown releases the database connection and flushes the logger
func (a *App) shutdown() error {
	var errs []error

	// Close container resources
	if a.Container != nil {
		a.Logger.Info("closing container resources...")
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("failed to close container", zap.Error(err))
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}

	a.Logger.Info("application shutdown complete")

	// Sync logger
	if err := a.Logger.Sync(); err != nil {
		// Ignore sync errors for stdout/stderr
		if err.Error() != "sync /dev/stdout: invalid argument" &&
			err.Error() != "sync /dev/stderr: invalid argument" {
			errs = append(errs, fmt.Errorf("logger sync: %w", err))
		}
	}

	// Return aggregated errors
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

// loadConfig loads application configuration
func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	loggerCfg := logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		MaxSizeMB:      cfg.Logger.MaxSizeMB,
		MaxBackups:     cfg.Logger.MaxBackups,
		MaxAgeDays:     cfg.Logger.MaxAgeDays,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    cfg.Env,
	}

	return logger.NewWithConfig(loggerCfg)
}

// getConfigPath returns the configuration path
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
