package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/db"
	"github.com/spf13/cobra"
)

var (
	importStudentID string
	importProfile   string
	importDelete    bool
)

var importProfileCmd = &cobra.Command{
	Use:   "import-profile",
	Short: "Store a student profile in the database",
	Long: `Store (or with --delete, remove) a student profile in PostgreSQL so that
/predict-career-path and recommend --student-id can find it. Requires
DATABASE_URL or database_url in the config file.`,
	RunE: runImportProfile,
}

func init() {
	importProfileCmd.Flags().StringVar(&importStudentID, "student-id", "", "Student ID (required)")
	importProfileCmd.Flags().StringVar(&importProfile, "profile", "", "Profile JSON file")
	importProfileCmd.Flags().BoolVar(&importDelete, "delete", false, "Delete the stored profile instead")
	_ = importProfileCmd.MarkFlagRequired("student-id")
	rootCmd.AddCommand(importProfileCmd)
}

func runImportProfile(cmd *cobra.Command, _ []string) error {
	if !importDelete && importProfile == "" {
		return errors.New("--profile is required unless --delete is set")
	}

	cfg, err := resolveConfig(configPath, configFromFlags())
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required to store profiles")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return err
	}

	if importDelete {
		if err := database.DeleteProfile(ctx, importStudentID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %s\n", importStudentID)
		return nil
	}

	profile, err := inlineProfile(importProfile, "", "")
	if err != nil {
		return err
	}
	stored := &db.Profile{
		StudentID:  importStudentID,
		ResumeText: profile.ResumeText,
		Skills:     profile.Skills,
	}
	if err := database.UpsertProfile(ctx, stored); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Stored profile %s (%d skills)\n", importStudentID, len(stored.Skills))
	return nil
}
