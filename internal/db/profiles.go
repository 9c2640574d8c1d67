package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetProfile retrieves a profile by student ID. Returns nil if not found.
func (db *DB) GetProfile(ctx context.Context, studentID string) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT student_id, resume_text, skills, updated_at
		 FROM profiles WHERE student_id = $1`,
		studentID,
	).Scan(&p.StudentID, &p.ResumeText, &p.Skills, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile %s: %w", studentID, err)
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	return &p, nil
}

// UpsertProfile inserts or replaces a profile
func (db *DB) UpsertProfile(ctx context.Context, p *Profile) error {
	if p == nil || p.StudentID == "" {
		return fmt.Errorf("profile student ID is required")
	}

	skills := p.Skills
	if skills == nil {
		skills = []string{}
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (student_id, resume_text, skills)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (student_id) DO UPDATE
		 SET resume_text = EXCLUDED.resume_text, skills = EXCLUDED.skills, updated_at = NOW()
		 RETURNING updated_at`,
		p.StudentID, p.ResumeText, skills,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.StudentID, err)
	}
	return nil
}

// DeleteProfile removes a profile. Deleting a missing profile is not an error.
func (db *DB) DeleteProfile(ctx context.Context, studentID string) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM profiles WHERE student_id = $1`, studentID); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", studentID, err)
	}
	return nil
}
