// Package profiles supplies person profiles by student ID.
package profiles

import (
	"context"
	"fmt"

	"github.com/jonathan/career-pathfinder/internal/types"
)

// Source looks up a profile by student ID
type Source interface {
	Get(ctx context.Context, studentID string) (types.Profile, error)
}

// NotFoundError indicates no profile exists for a student ID
type NotFoundError struct {
	StudentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile not found: %s", e.StudentID)
}
