package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-pathfinder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.EnsureSchema(ctx))
	return db
}

func TestProfileCRUD_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	studentID := "test-" + uuid.New().String()
	defer func() { _ = db.DeleteProfile(ctx, studentID) }()

	missing, err := db.GetProfile(ctx, studentID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	profile := &Profile{StudentID: studentID, ResumeText: "Data analyst", Skills: []string{"SQL", "Excel"}}
	require.NoError(t, db.UpsertProfile(ctx, profile))
	assert.False(t, profile.UpdatedAt.IsZero())

	got, err := db.GetProfile(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Data analyst", got.ResumeText)
	assert.Equal(t, []string{"SQL", "Excel"}, got.Skills)

	profile.Skills = nil
	require.NoError(t, db.UpsertProfile(ctx, profile))
	got, err = db.GetProfile(ctx, studentID)
	require.NoError(t, err)
	assert.Empty(t, got.Skills)
}

func TestRecommendationRuns_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	studentID := "test-" + uuid.New().String()
	for _, role := range []string{"Junior Data Analyst", "Data Scientist"} {
		run := &RecommendationRun{
			StudentID:            studentID,
			PredictedCurrentRole: role,
			MaxPaths:             2,
			PotentialPaths: []types.Recommendation{{
				Path:     []string{role},
				SkillGap: []string{},
			}},
		}
		require.NoError(t, db.SaveRecommendationRun(ctx, run))
		assert.NotEqual(t, uuid.Nil, run.ID)
	}

	runs, err := db.ListRecommendationRuns(ctx, studentID, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "Data Scientist", runs[0].PredictedCurrentRole)
	assert.Equal(t, []string{"Data Scientist"}, runs[0].PotentialPaths[0].Path)

	anonymous := &RecommendationRun{PredictedCurrentRole: "Unknown", MaxPaths: 1}
	require.NoError(t, db.SaveRecommendationRun(ctx, anonymous))
}
