package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/aims/pkg/client/mock"
	"github.com/de-tools/aims/pkg/server"
	"github.com/de-tools/aims/pkg/services/config"
	"github.com/de-tools/aims/pkg/services/registry"
	"github.com/de-tools/aims/pkg/store/sqlstore"
)

const tokenEnv = "AIMS_SERVER_TOKEN"

var (
	cfgPath string
	dbPath  string
	token   string
	noSeed  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the development governance API backed by SQLite",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a config file providing the endpoint paths")
	rootCmd.Flags().StringVar(&dbPath, "db", ":memory:", "SQLite database file")
	rootCmd.Flags().StringVar(&token, "token", "", "Bearer token required by resource routes (default $"+tokenEnv+")")
	rootCmd.Flags().BoolVar(&noSeed, "no-seed", false, "Start with an empty store")
	return rootCmd
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	addr, err := listenAddr(os.Getenv)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := sqlstore.NewDB(sqlstore.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	st, err := sqlstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}
	records, err := registry.New(st)
	if err != nil {
		return fmt.Errorf("failed to create registry: %w", err)
	}
	if !noSeed {
		if err := records.Seed(ctx, mock.DefaultFixtures()); err != nil {
			return fmt.Errorf("failed to seed registry: %w", err)
		}
	}

	if token == "" {
		token = os.Getenv(tokenEnv)
	}
	if token == "" {
		logger.Warn().Msg("no server token configured, resource routes are open")
	}

	logger.Info().Str("db", dbPath).Msg("registry ready")

	api := server.NewWebAPI(logger, server.Config{
		Addr:         addr,
		Token:        token,
		Endpoints:    cfg.API.Endpoints,
		Dependencies: server.Dependencies{Records: records},
	})
	return api.Start()
}

func listenAddr(getenv func(string) string) (string, error) {
	host, port := getenv("SERVER_HOST"), getenv("SERVER_PORT")
	if host == "" || port == "" {
		return "", fmt.Errorf("missing SERVER_HOST or SERVER_PORT, set them in the environment or .env")
	}
	return net.JoinHostPort(host, port), nil
}
