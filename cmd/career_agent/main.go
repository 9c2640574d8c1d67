// Package main provides the career_agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career path recommendation engine",
	Long: `career_agent locates the role in a curated role-transition graph that best
matches a profile, proposes the most attainable next roles and quantifies the
skill gap for each.

Configuration can be loaded from a JSON file using --config. Command-line
flags override config file values; API keys and DATABASE_URL are read from
the environment (and .env) when not set in the file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
