package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"darts-tracker/internal/constants"
	"darts-tracker/internal/ingest"
	"darts-tracker/internal/middleware"

	"github.com/gorilla/mux"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r.Context())
	me, err := s.userSvc.Me(r.Context(), profile)
	if err != nil {
		serviceError(w, r, err, "failed to load profile")
		return
	}
	respondJSON(w, http.StatusOK, me)
}

func (s *Server) handleListClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := s.clubSvc.ListClubs(r.Context())
	if err != nil {
		serviceError(w, r, err, "failed to list clubs")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"clubs": clubs})
}

func (s *Server) handleGetClub(w http.ResponseWriter, r *http.Request) {
	club, err := s.clubSvc.GetClub(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, r, err, "failed to load club")
		return
	}
	respondJSON(w, http.StatusOK, club)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.dashboardSvc.Dashboard(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		serviceError(w, r, err, "failed to load dashboard")
		return
	}
	respondJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handlePlayerSummary(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	summary, err := s.dashboardSvc.PlayerSummary(r.Context(), vars["id"], vars["name"], r.URL.Query().Get("season"))
	if err != nil {
		serviceError(w, r, err, "failed to load player summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.standingsSvc.Standings(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("season"))
	if err != nil {
		serviceError(w, r, err, "failed to load standings")
		return
	}
	respondJSON(w, http.StatusOK, standings)
}

func (s *Server) handleHandicaps(w http.ResponseWriter, r *http.Request) {
	handicaps, err := s.standingsSvc.Handicaps(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("season"))
	if err != nil {
		serviceError(w, r, err, "failed to load handicaps")
		return
	}
	respondJSON(w, http.StatusOK, handicaps)
}

func (s *Server) handleCreateClub(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name"`
		Description    string `json:"description"`
		DatabasePrefix string `json:"database_prefix"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid request body")
		return
	}

	club, err := s.clubSvc.CreateClub(r.Context(), req.Name, req.Description, req.DatabasePrefix)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, club)
}

func (s *Server) handleDeleteClub(w http.ResponseWriter, r *http.Request) {
	if err := s.clubSvc.DeleteClub(r.Context(), mux.Vars(r)["id"]); err != nil {
		serviceError(w, r, err, "failed to delete club")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleLinkMember(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	memberID, err := strconv.ParseInt(vars["memberID"], 10, 64)
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid member id")
		return
	}

	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userSvc.LinkMember(r.Context(), vars["id"], memberID, req.UserID); err != nil {
		serviceError(w, r, err, "failed to link member")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "linked"})
}

// handleUpload accepts one CSV export as multipart form data: a "table" field
// naming the target and a "file" field with the data. Partial loads come back
// as 200 with warnings in the report; a load where nothing survived is a 422.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid multipart form")
		return
	}

	table := r.FormValue("table")
	if table == "" {
		respondError(w, r, errors.New("missing table field"), http.StatusBadRequest, "table is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxUploadBytes))
	if err != nil {
		respondError(w, r, err, http.StatusBadRequest, "failed to read upload")
		return
	}

	report, err := s.ingestSvc.Upload(r.Context(), table, data)
	if err != nil {
		var failed *ingest.IngestionFailedError
		switch {
		case errors.Is(err, ingest.ErrUnknownTable):
			respondError(w, r, err, http.StatusBadRequest, "unknown table")
		case errors.Is(err, ingest.ErrEmptyDataset):
			respondError(w, r, err, http.StatusBadRequest, "no data rows in upload")
		case errors.As(err, &failed):
			respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":    "all batches failed",
				"warnings": failed.Warnings,
			})
		default:
			var parseErr *ingest.ParseError
			if errors.As(err, &parseErr) {
				respondError(w, r, err, http.StatusBadRequest, "failed to parse upload")
				return
			}
			serviceError(w, r, err, "upload failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleUploadTargets(w http.ResponseWriter, r *http.Request) {
	schemas := s.ingestSvc.Targets()
	type target struct {
		Table string `json:"table"`
		Label string `json:"label"`
		Club  string `json:"club"`
	}
	targets := make([]target, 0, len(schemas))
	for _, sc := range schemas {
		targets = append(targets, target{Table: sc.Table, Label: sc.Label, Club: sc.Club})
	}
	respondJSON(w, http.StatusOK, map[string]any{"targets": targets})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userSvc.ListUsers(r.Context())
	if err != nil {
		serviceError(w, r, err, "failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userSvc.UpdateRole(r.Context(), mux.Vars(r)["id"], req.Role); err != nil {
		serviceError(w, r, err, "failed to update role")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleAssignClub(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClubID string `json:"club_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userSvc.AssignClub(r.Context(), mux.Vars(r)["id"], req.ClubID); err != nil {
		serviceError(w, r, err, "failed to assign club")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.analyticsSvc.Report(r.Context())
	if err != nil {
		serviceError(w, r, err, "failed to build analytics")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleNotificationFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.notifications.Feed(r.Context())
	if err != nil {
		serviceError(w, r, err, "failed to load notifications")
		return
	}
	respondJSON(w, http.StatusOK, feed)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.MarkRead(r.Context(), mux.Vars(r)["id"]); err != nil {
		serviceError(w, r, err, "failed to mark notification read")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := s.notifications.MarkAllRead(r.Context()); err != nil {
		serviceError(w, r, err, "failed to mark notifications read")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// handleSignupHook authenticates the identity service with a shared secret
// rather than a user token.
func (s *Server) handleSignupHook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.SignupSecret == "" {
		respondError(w, r, errors.New("signup hook not configured"), http.StatusNotFound, "not found")
		return
	}
	secret := r.Header.Get("X-Hook-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.SignupSecret)) != 1 {
		respondError(w, r, errors.New("bad hook secret"), http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.userSvc.HandleSignup(r.Context(), req.UserID, req.Email, req.Name); err != nil {
		respondError(w, r, err, http.StatusBadRequest, "failed to process signup")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
