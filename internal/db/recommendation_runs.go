package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-pathfinder/internal/types"
)

// SaveRecommendationRun stores a served recommendation. A nil ID is
// replaced with a new UUID, which is written back to run.
func (db *DB) SaveRecommendationRun(ctx context.Context, run *RecommendationRun) error {
	if run == nil {
		return fmt.Errorf("recommendation run is nil")
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	potential := run.PotentialPaths
	if potential == nil {
		potential = []types.Recommendation{}
	}
	paths, err := json.Marshal(potential)
	if err != nil {
		return fmt.Errorf("failed to marshal potential paths: %w", err)
	}

	var studentID *string
	if run.StudentID != "" {
		studentID = &run.StudentID
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO recommendation_runs (id, student_id, predicted_current_role, max_paths, potential_paths)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		run.ID, studentID, run.PredictedCurrentRole, run.MaxPaths, paths,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save recommendation run: %w", err)
	}
	return nil
}

// ListRecommendationRuns returns the most recent runs for a student, newest
// first. An empty student ID lists runs for all students.
func (db *DB) ListRecommendationRuns(ctx context.Context, studentID string, limit int) ([]RecommendationRun, error) {
	if limit <= 0 {
		limit = DefaultRunLimit
	}

	query := `SELECT id, COALESCE(student_id, ''), predicted_current_role, max_paths, potential_paths, created_at
		FROM recommendation_runs`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1 ORDER BY created_at DESC LIMIT $2`
		args = append(args, studentID, limit)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation runs: %w", err)
	}
	defer rows.Close()

	runs := []RecommendationRun{}
	for rows.Next() {
		var run RecommendationRun
		var paths []byte
		if err := rows.Scan(&run.ID, &run.StudentID, &run.PredictedCurrentRole, &run.MaxPaths, &paths, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation run: %w", err)
		}
		if err := json.Unmarshal(paths, &run.PotentialPaths); err != nil {
			return nil, fmt.Errorf("failed to decode potential paths for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recommendation runs: %w", err)
	}
	return runs, nil
}
