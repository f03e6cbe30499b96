package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/de-tools/project-atlas/pkg/server"
	"github.com/de-tools/project-atlas/pkg/services/config"
	"github.com/de-tools/project-atlas/pkg/services/dashboard"
	"github.com/de-tools/project-atlas/pkg/services/insights"
	"github.com/de-tools/project-atlas/pkg/services/metrics"
	"github.com/de-tools/project-atlas/pkg/services/workflow"
	"github.com/de-tools/project-atlas/pkg/store/duckdb"
	duckdbrecords "github.com/de-tools/project-atlas/pkg/store/duckdb/records"
	duckdbworkflow "github.com/de-tools/project-atlas/pkg/store/duckdb/workflow"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Project Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the atlas config file (defaults and ATLAS_* variables apply when empty)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	db, err := duckdb.NewDB(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	recordStore, err := duckdbrecords.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}
	workflowStore, err := duckdbworkflow.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create workflow store: %w", err)
	}

	registry, err := config.NewLooseRegistry(cfg.Sync.ProfilesPath)
	if err != nil {
		return fmt.Errorf("failed to create profile registry: %w", err)
	}

	repository := dashboard.NewStoreRepository(recordStore)
	svc := dashboard.NewService(
		repository,
		metrics.NewAggregator(cfg.Metrics),
		insights.NewDefaultEngine(cfg.Insights),
		dashboard.WithWriter(repository),
	)

	runnerConfig := workflow.DefaultRunnerConfig()
	if cfg.Sync.Interval > 0 {
		runnerConfig.Interval = cfg.Sync.Interval
	}
	if cfg.Sync.Sleep > 0 {
		runnerConfig.Sleep = cfg.Sync.Sleep
	}

	workflowCtrl := workflow.NewController(db, workflowStore, registry, workflow.OpenSource, repository, runnerConfig)
	if err := workflowCtrl.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize workflow controller: %w", err)
	}
	defer workflowCtrl.Shutdown()

	profiles, _ := registry.GetProfiles(ctx)
	logger.Info().Msgf("Profiles loaded from `%s`:", cfg.Sync.ProfilesPath)
	for _, name := range profiles {
		profile, err := registry.GetProfile(ctx, name)
		if err != nil {
			logger.Warn().Err(err).Str("profile", name).Msg("skipping invalid profile")
			continue
		}
		logger.Info().Msgf("Name: `%s`, Type: `%s`", profile.Name, profile.Type)
	}

	api := server.NewWebAPI(server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Dependencies: server.Dependencies{
			Dashboard: svc,
			Syncs:     workflowCtrl,
			Logger:    logger,
		},
	})

	return api.Start(ctx)
}
