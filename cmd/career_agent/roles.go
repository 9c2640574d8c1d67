package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/observability"
	"github.com/jonathan/career-pathfinder/internal/types"
	"github.com/spf13/cobra"
)

var (
	rolesGraph string
	rolesJSON  bool
)

var rolesCmd = &cobra.Command{
	Use:   "roles [title]",
	Short: "List the roles of the graph",
	Long:  `List every role with its required skills and next steps, or describe a single role.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRoles,
}

func init() {
	rolesCmd.Flags().StringVar(&rolesGraph, "graph", "", "Role graph definition file (.json or .toml)")
	rolesCmd.Flags().BoolVar(&rolesJSON, "json", false, "Print roles as JSON")
	rootCmd.AddCommand(rolesCmd)
}

func runRoles(cmd *cobra.Command, args []string) error {
	path := rolesGraph
	if path == "" && configPath != "" {
		cfg, err := resolveConfig(configPath, configFromFlags())
		if err != nil {
			return err
		}
		path = cfg.GraphPath
	}

	g, err := loadGraph(path)
	if err != nil {
		return err
	}

	var summaries []types.RoleSummary
	if len(args) == 1 {
		summary, ok := g.Summary(args[0])
		if !ok {
			return fmt.Errorf("unknown role: %q", args[0])
		}
		summaries = []types.RoleSummary{summary}
	} else {
		summaries = g.Summaries()
	}

	out := cmd.OutOrStdout()
	if rolesJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	observability.NewPrinter(out).PrintRoles(summaries)
	return nil
}
