package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rxguard/rxguard/internal/config"
	"github.com/rxguard/rxguard/internal/domain/drug"
	"github.com/rxguard/rxguard/internal/domain/explain"
	"github.com/rxguard/rxguard/internal/domain/interaction"
	"github.com/rxguard/rxguard/internal/platform/db"
	"github.com/rxguard/rxguard/internal/platform/middleware"
	"github.com/rxguard/rxguard/internal/platform/openfda"
	"github.com/rxguard/rxguard/internal/platform/rxnav"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rxguard-server",
		Short: "Drug interaction safety API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			applied, err := migrator.Up(context.Background())
			if err != nil {
				return err
			}
			logger.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		},
	}
	upCmd.Flags().String("dir", "migrations", "Migrations directory")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, _, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(context.Background())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%03d %-40s %s\n", s.Version, s.Name, state)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "migrations", "Migrations directory")

	cmd.AddCommand(upCmd)
	cmd.AddCommand(statusCmd)
	return cmd
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load interaction records from a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			pool, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := interaction.NewPgRecordRepository(pool)
			inserted, err := interaction.IngestCSV(context.Background(), repo, file, logger)
			if err != nil {
				return err
			}
			logger.Info().Int("inserted", inserted).Msg("ingestion complete")
			return nil
		},
	}
	cmd.Flags().String("file", "", "CSV file to ingest")
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the critical interaction records",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, logger, err := bootstrap()
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := interaction.NewPgRecordRepository(pool)
			if err := interaction.Seed(context.Background(), repo, logger); err != nil {
				return err
			}
			logger.Info().Msg("seeding complete")
			return nil
		},
	}
}

// bootstrap loads config and opens the database pool for CLI commands.
func bootstrap() (*pgxpool.Pool, zerolog.Logger, error) {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return nil, logger, err
	}
	if cfg.DatabaseURL == "" {
		return nil, logger, fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, logger, err
	}
	return pool, logger, nil
}

func newLogger() zerolog.Logger {
	if os.Getenv("ENV") == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func runServer() error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// External clients
	rxnavClient := rxnav.NewClient(cfg.RxNavBaseURL, cfg.LookupTimeout(), logger)
	openfdaClient := openfda.NewClient(cfg.OpenFDABaseURL, cfg.LookupTimeout(), logger)

	// Lookup tables, with optional deploy-time overrides
	arabicNames := drug.DefaultTransliterationTable()
	if cfg.TransliterationFile != "" {
		arabicNames, err = drug.LoadTransliterationFile(cfg.TransliterationFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load transliteration table")
		}
	}
	synonyms := drug.DefaultSynonymTable()
	if cfg.SynonymFile != "" {
		synonyms, err = drug.LoadSynonymFile(cfg.SynonymFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load synonym table")
		}
	}

	// Services
	conceptRepo := drug.NewPgConceptRepository(pool)
	resolver := drug.NewResolver(rxnavClient, arabicNames, synonyms, logger)
	recordRepo := interaction.NewPgRecordRepository(pool)
	reconciler := interaction.NewReconciler(recordRepo, rxnavClient, openfdaClient, conceptRepo, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(middleware.RequestTimeout(30 * time.Second))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	drug.NewHandler(resolver, conceptRepo).RegisterRoutes(apiV1)
	interaction.NewHandler(reconciler, recordRepo, rxnavClient).RegisterRoutes(apiV1)
	explain.NewHandler().RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
