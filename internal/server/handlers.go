package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-pathfinder/internal/db"
	"github.com/jonathan/career-pathfinder/internal/profiles"
	"github.com/jonathan/career-pathfinder/internal/types"
)

// maxBodyBytes bounds request bodies; resume text is capped well below it
const maxBodyBytes = 1 << 20

// errNoRecommendations is reported when a stored profile yields no paths
const errNoRecommendations = "Could not generate recommendations."

// RolesResponse represents the response for GET /roles
type RolesResponse struct {
	Roles []types.RoleSummary `json:"roles"`
	Count int                 `json:"count"`
}

// RunsResponse represents the response for GET /students/{student_id}/runs
type RunsResponse struct {
	StudentID string                 `json:"student_id"`
	Runs      []db.RecommendationRun `json:"runs"`
	Count     int                    `json:"count"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"roles":  s.graph.Len(),
	})
}

// handleListRoles lists every role in the graph
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	roles := s.graph.Summaries()
	s.jsonResponse(w, http.StatusOK, RolesResponse{Roles: roles, Count: len(roles)})
}

// handleGetRole describes one role and its successors
func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	title := r.PathValue("title")
	summary, ok := s.graph.Summary(title)
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Role not found: "+title)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// handlePredict recommends paths for a stored student profile
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	maxPaths := s.resolveMaxPaths(req.MaxPaths)

	profile, err := s.profiles.Get(r.Context(), req.StudentID)
	if err != nil {
		var notFound *profiles.NotFoundError
		if errors.As(err, &notFound) {
			s.errorResponse(w, http.StatusNotFound, "Student not found")
			return
		}
		log.Printf("[predict] Failed to load profile %s: %v", req.StudentID, err)
		s.errorResponse(w, HTTPStatus(err), "Failed to load profile")
		return
	}

	recs, err := s.recommender.Recommend(r.Context(), profile, maxPaths)
	if err != nil {
		log.Printf("[predict] Recommendation failed for %s: %v", req.StudentID, err)
		s.errorResponse(w, HTTPStatus(err), errNoRecommendations)
		return
	}
	if len(recs) == 0 {
		s.errorResponse(w, http.StatusInternalServerError, errNoRecommendations)
		return
	}

	resp := types.PredictionResponse{
		StudentID:            req.StudentID,
		PredictedCurrentRole: types.PredictedCurrentRole(recs),
		PotentialPaths:       recs,
	}
	s.saveRun(r.Context(), req.StudentID, maxPaths, resp.PredictedCurrentRole, recs)
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleRecommend recommends paths for an inline profile
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	maxPaths := s.resolveMaxPaths(req.MaxPaths)

	profile := req.Profile()
	profile.ResumeText = profiles.CleanText(profile.ResumeText)

	requestID := uuid.New().String()
	w.Header().Set("X-Request-ID", requestID)

	recs, err := s.recommender.Recommend(r.Context(), profile, maxPaths)
	if err != nil {
		log.Printf("[recommend] Request %s failed: %v", requestID, err)
		s.errorResponse(w, HTTPStatus(err), errNoRecommendations)
		return
	}
	if recs == nil {
		recs = []types.Recommendation{}
	}

	resp := types.RecommendResponse{
		RequestID:            requestID,
		PredictedCurrentRole: types.PredictedCurrentRole(recs),
		PotentialPaths:       recs,
	}
	if len(recs) > 0 {
		s.saveRun(r.Context(), "", maxPaths, resp.PredictedCurrentRole, recs)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRuns lists stored recommendations for a student, newest first
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	studentID := r.PathValue("student_id")

	limit := db.DefaultRunLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.history.ListRecommendationRuns(r.Context(), studentID, limit)
	if err != nil {
		log.Printf("[runs] Failed to list runs for %s: %v", studentID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	if runs == nil {
		runs = []db.RecommendationRun{}
	}
	s.jsonResponse(w, http.StatusOK, RunsResponse{StudentID: studentID, Runs: runs, Count: len(runs)})
}

// decodeJSON reads a bounded JSON body into v and reports success
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			s.errorResponse(w, http.StatusBadRequest, "Request body is required")
			return false
		}
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) resolveMaxPaths(requested int) int {
	if requested > 0 {
		return requested
	}
	return s.maxPaths
}

// saveRun stores a served recommendation. Failures are logged and ignored.
func (s *Server) saveRun(ctx context.Context, studentID string, maxPaths int, current string, recs []types.Recommendation) {
	if s.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	run := &db.RecommendationRun{
		StudentID:            studentID,
		PredictedCurrentRole: current,
		MaxPaths:             maxPaths,
		PotentialPaths:       recs,
	}
	if err := s.history.SaveRecommendationRun(ctx, run); err != nil {
		log.Printf("[history] Failed to save recommendation run: %v", err)
	}
}
