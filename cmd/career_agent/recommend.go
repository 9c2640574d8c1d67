package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/career-pathfinder/internal/config"
	"github.com/jonathan/career-pathfinder/internal/observability"
	"github.com/jonathan/career-pathfinder/internal/profiles"
	"github.com/jonathan/career-pathfinder/internal/schemas"
	"github.com/jonathan/career-pathfinder/internal/types"
	"github.com/spf13/cobra"
)

var (
	recommendStudentID string
	recommendProfile   string
	recommendSkills    string
	recommendText      string
	recommendMaxPaths  int
	recommendGraph     string
	recommendJSON      bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend next career moves for a profile",
	Long: `Recommend next career moves for a stored student (--student-id), a profile
JSON file (--profile) or an inline profile (--skills and/or --text).`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendStudentID, "student-id", "", "Student ID to look up")
	recommendCmd.Flags().StringVar(&recommendProfile, "profile", "", "Profile JSON file: {\"resume_text\": ..., \"skills\": [...]}")
	recommendCmd.Flags().StringVar(&recommendSkills, "skills", "", "Comma-separated skills")
	recommendCmd.Flags().StringVar(&recommendText, "text", "", "Free-text profile or resume")
	recommendCmd.Flags().IntVar(&recommendMaxPaths, "max-paths", 0, "Number of recommendations (default 2)")
	recommendCmd.Flags().StringVar(&recommendGraph, "graph", "", "Role graph definition file (.json or .toml)")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "Print the response as JSON")
	recommendCmd.MarkFlagsMutuallyExclusive("student-id", "profile")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	if recommendStudentID == "" && recommendProfile == "" && recommendSkills == "" && recommendText == "" {
		return fmt.Errorf("one of --student-id, --profile, --skills or --text is required")
	}

	cfg, err := resolveConfig(configPath, config.Config{
		GraphPath: recommendGraph,
		MaxPaths:  recommendMaxPaths,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	// Inline input is read before any provider is built
	var profile types.Profile
	if recommendStudentID == "" {
		profile, err = inlineProfile(recommendProfile, recommendSkills, recommendText)
		if err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := buildApp(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	if recommendStudentID != "" {
		profile, err = a.profiles.Get(ctx, recommendStudentID)
		if err != nil {
			return err
		}
	}

	recs, err := a.engine.Recommend(ctx, profile, cfg.MaxPaths)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if recommendJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(types.PredictionResponse{
			StudentID:            recommendStudentID,
			PredictedCurrentRole: types.PredictedCurrentRole(recs),
			PotentialPaths:       nonNil(recs),
		})
	}

	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintProfile(recommendStudentID, profile)
	}
	printer.PrintRecommendations(recs)
	return nil
}

// inlineProfile builds a profile from a JSON file and/or flag values.
// Flag values extend the file.
func inlineProfile(path, skillList, text string) (types.Profile, error) {
	var profile types.Profile
	if path != "" {
		p, err := readProfileFile(path)
		if err != nil {
			return types.Profile{}, err
		}
		profile = p
	}

	profile.Skills = append(profile.Skills, parseSkills(skillList)...)
	if text = strings.TrimSpace(text); text != "" {
		if profile.ResumeText != "" {
			profile.ResumeText += "\n"
		}
		profile.ResumeText += text
	}
	profile.ResumeText = profiles.CleanText(profile.ResumeText)

	if err := profile.Validate(); err != nil {
		return types.Profile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return profile, nil
}

// readProfileFile reads and schema-validates a profile JSON file
func readProfileFile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	if err := schemas.ValidateProfile(data); err != nil {
		return types.Profile{}, err
	}

	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return types.Profile{}, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return profile, nil
}

// parseSkills splits a comma-separated list, dropping blanks
func parseSkills(list string) []string {
	var out []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(recs []types.Recommendation) []types.Recommendation {
	if recs == nil {
		return []types.Recommendation{}
	}
	return recs
}
