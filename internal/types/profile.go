package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is a person's free-text description plus declared skill tags.
// It is owned by the caller for the duration of one recommendation request.
type Profile struct {
	ResumeText string   `json:"resume_text" validate:"max=50000"`
	Skills     []string `json:"skills" validate:"max=200,dive,max=100"`
}

// PredictRequest asks for career paths for a stored student profile.
type PredictRequest struct {
	StudentID string `json:"student_id" validate:"required,max=128"`
	MaxPaths  int    `json:"max_paths,omitempty" validate:"omitempty,min=1,max=10"`
}

// RecommendRequest asks for career paths for an inline profile.
type RecommendRequest struct {
	ResumeText string   `json:"resume_text" validate:"required_without=Skills,max=50000"`
	Skills     []string `json:"skills" validate:"required_without=ResumeText,max=200,dive,required,max=100"`
	MaxPaths   int      `json:"max_paths,omitempty" validate:"omitempty,min=1,max=10"`
}

// Profile returns the profile carried by the request.
func (r *RecommendRequest) Profile() Profile {
	return Profile{ResumeText: r.ResumeText, Skills: r.Skills}
}

// Validate validates the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// Validate validates the PredictRequest using the validator.
func (r *PredictRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
