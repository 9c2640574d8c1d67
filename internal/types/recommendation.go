package types

// UnknownRole is reported as the predicted role when no recommendation
// could be produced.
const UnknownRole = "Unknown"

// Recommendation is one proposed career move: the one-hop path, the skills
// missing for it, and narrative advice.
type Recommendation struct {
	Path               []string `json:"path"`
	SkillGap           []string `json:"skill_gap"`
	RecommendationText string   `json:"recommendation_text"`
}

// CurrentRole returns the role the recommendation starts from, or an empty
// string for a malformed path.
func (r Recommendation) CurrentRole() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[0]
}

// TargetRole returns the proposed next role. Terminal recommendations have
// a single-element path and no target.
func (r Recommendation) TargetRole() string {
	if len(r.Path) < 2 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// PredictedCurrentRole reports the current role shared by a ranked list of
// recommendations: the first element of the first path.
func PredictedCurrentRole(recs []Recommendation) string {
	if len(recs) == 0 {
		return UnknownRole
	}
	if role := recs[0].CurrentRole(); role != "" {
		return role
	}
	return UnknownRole
}

// PredictionResponse is returned for a stored student profile.
type PredictionResponse struct {
	StudentID            string           `json:"student_id"`
	PredictedCurrentRole string           `json:"predicted_current_role"`
	PotentialPaths       []Recommendation `json:"potential_paths"`
}

// RecommendResponse is returned for an inline profile.
type RecommendResponse struct {
	RequestID            string           `json:"request_id"`
	PredictedCurrentRole string           `json:"predicted_current_role"`
	PotentialPaths       []Recommendation `json:"potential_paths"`
}
