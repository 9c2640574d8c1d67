package main

import (
	"context"
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/config"
	"github.com/jonathan/career-pathfinder/internal/metrics"
	"github.com/jonathan/career-pathfinder/internal/server"
	"github.com/jonathan/career-pathfinder/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort     int
	serveMaxPaths int
	serveGraph    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for career path
recommendations. Profiles are read from PostgreSQL when DATABASE_URL is set,
otherwise from built-in demo profiles.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().IntVar(&serveMaxPaths, "max-paths", 0, "Recommendations per request when the request does not set one (default 2)")
	serveCmd.Flags().StringVar(&serveGraph, "graph", "", "Role graph definition file (.json or .toml)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(configPath, config.Config{
		GraphPath: serveGraph,
		MaxPaths:  serveMaxPaths,
		Port:      servePort,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	m := metrics.New()
	a, err := buildApp(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := server.Deps{
		Recommender: a.engine,
		Graph:       a.graph,
		Profiles:    a.profiles,
		Metrics:     m,
	}
	if a.database != nil {
		deps.History = a.database
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		MaxPaths:  cfg.MaxPaths,
		RateLimit: ratelimit.LoadConfig(),
	}, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
