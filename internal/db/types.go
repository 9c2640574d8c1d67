package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-pathfinder/internal/types"
)

// Profile is a stored person profile keyed by student ID
type Profile struct {
	StudentID  string    `json:"student_id"`
	ResumeText string    `json:"resume_text"`
	Skills     []string  `json:"skills"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RecommendationRun is one served recommendation
type RecommendationRun struct {
	ID                   uuid.UUID              `json:"id"`
	StudentID            string                 `json:"student_id,omitempty"`
	PredictedCurrentRole string                 `json:"predicted_current_role"`
	MaxPaths             int                    `json:"max_paths"`
	PotentialPaths       []types.Recommendation `json:"potential_paths"`
	CreatedAt            time.Time              `json:"created_at"`
}

// DefaultRunLimit caps ListRecommendationRuns when no limit is given
const DefaultRunLimit = 20
