package main

import (
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/observability"
	"github.com/spf13/cobra"
)

var validateGraphCmd = &cobra.Command{
	Use:   "validate-graph <file>",
	Short: "Validate a role graph definition file",
	Long: `Validate a role graph definition (.json or .toml): JSON files are checked
against the role graph schema, the version must be supported, and every
transition must reference a declared role.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidateGraph,
}

func init() {
	rootCmd.AddCommand(validateGraphCmd)
}

func runValidateGraph(cmd *cobra.Command, args []string) error {
	path := args[0]

	g, err := careergraph.LoadFile(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintGraphStats(path, g.Len(), g.TransitionCount(), terminalCount(g))
	return nil
}

// terminalCount counts roles with no outgoing transitions
func terminalCount(g *careergraph.Graph) int {
	n := 0
	for _, title := range g.AllRoles() {
		if len(g.Successors(title)) == 0 {
			n++
		}
	}
	return n
}
