package profiles

import (
	"context"
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/db"
	"github.com/jonathan/career-pathfinder/internal/types"
)

// ProfileStore is the subset of db.DB used to read profiles
type ProfileStore interface {
	GetProfile(ctx context.Context, studentID string) (*db.Profile, error)
}

// DBSource serves profiles from PostgreSQL
type DBSource struct {
	store ProfileStore
}

// NewDBSource creates a source backed by store
func NewDBSource(store ProfileStore) *DBSource {
	return &DBSource{store: store}
}

// Get implements Source. Stored resume text is cleaned before use.
func (s *DBSource) Get(ctx context.Context, studentID string) (types.Profile, error) {
	p, err := s.store.GetProfile(ctx, studentID)
	if err != nil {
		return types.Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	if p == nil {
		return types.Profile{}, &NotFoundError{StudentID: studentID}
	}
	return types.Profile{
		ResumeText: CleanText(p.ResumeText),
		Skills:     p.Skills,
	}, nil
}
