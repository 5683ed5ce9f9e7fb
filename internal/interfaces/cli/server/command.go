package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/orris-inc/supportdesk/internal/infrastructure/config"
	"github.com/orris-inc/supportdesk/internal/infrastructure/database"
	"github.com/orris-inc/supportdesk/internal/infrastructure/migration"
	httpRouter "github.com/orris-inc/supportdesk/internal/interfaces/http"
	"github.com/orris-inc/supportdesk/internal/interfaces/web"
	"github.com/orris-inc/supportdesk/internal/shared/constants"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/services/markdown"
)

var (
	env                string
	configPath         string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the support desk HTTP server: the ticket API under the configured prefix and, when enabled, the web UI.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply database migrations on startup")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.WithComponent("server")
	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate,
		"web_ui", cfg.Server.WebUI)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cfg, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	router := httpRouter.NewRouter(database.Get(), cfg, logger.NewLogger())
	router.SetupRoutes()
	defer router.Shutdown()

	if cfg.Server.WebUI {
		ui, err := web.NewHandler(cfg.Server.NormalizedAPIPrefix(), markdown.NewService(), logger.WithComponent("web"))
		if err != nil {
			return fmt.Errorf("failed to build web UI: %w", err)
		}
		router.SetFallback(ui)
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server listening",
			"address", cfg.Server.GetAddr(),
			"api_prefix", cfg.Server.NormalizedAPIPrefix(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serveErr:
		if ok {
			log.Errorw("server failed", "error", err)
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(cfg *config.Config, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate {
		if env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment")
		}

		manager := migration.NewManager(env, cfg.Database.Driver, log)
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		return nil
	}

	strategy := migration.NewGooseStrategy(cfg.Database.Driver, "", log)
	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}

	latest, err := migration.LatestVersion(cfg.Database.Driver)
	if err != nil {
		log.Warnw("failed to read embedded migrations", "error", err)
		return nil
	}

	if version < latest {
		log.Warnw("database schema is behind, run `supportdesk migrate up` or start with --auto-migrate",
			"current_version", version,
			"latest_version", latest)
		return nil
	}

	log.Infow("current migration version", "version", version)
	return nil
}
