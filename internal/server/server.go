// Package server wires the HTTP surface: route registration, JSON handlers,
// and the live notification socket.
package server

import (
	"net/http"

	"darts-tracker/internal/api"
	"darts-tracker/internal/config"
	"darts-tracker/internal/middleware"
	"darts-tracker/internal/repository"
	"darts-tracker/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Server struct {
	cfg           *config.Config
	clubSvc       *service.ClubService
	dashboardSvc  *service.DashboardService
	standingsSvc  *service.StandingsService
	ingestSvc     *service.IngestService
	userSvc       *service.UserService
	analyticsSvc  *service.AnalyticsService
	notifications *service.NotificationService
	identity      *api.IdentityClient
	profiles      *repository.ProfileRepository
	logger        zerolog.Logger
}

func NewServer(
	cfg *config.Config,
	clubSvc *service.ClubService,
	dashboardSvc *service.DashboardService,
	standingsSvc *service.StandingsService,
	ingestSvc *service.IngestService,
	userSvc *service.UserService,
	analyticsSvc *service.AnalyticsService,
	notifications *service.NotificationService,
	identity *api.IdentityClient,
	profiles *repository.ProfileRepository,
	logger zerolog.Logger,
) *Server {
	return &Server{
		cfg:           cfg,
		clubSvc:       clubSvc,
		dashboardSvc:  dashboardSvc,
		standingsSvc:  standingsSvc,
		ingestSvc:     ingestSvc,
		userSvc:       userSvc,
		analyticsSvc:  analyticsSvc,
		notifications: notifications,
		identity:      identity,
		profiles:      profiles,
		logger:        logger,
	}
}

func (s *Server) Router() *mux.Router {
	root := mux.NewRouter()
	root.Use(middleware.RequestID(s.logger))

	root.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	v1 := root.PathPrefix("/api/v1").Subrouter()

	// the identity service calls this, not a browser session
	v1.HandleFunc("/hooks/signup", s.handleSignupHook).Methods(http.MethodPost)

	auth := v1.PathPrefix("/").Subrouter()
	auth.Use(middleware.Auth(s.identity, s.profiles, s.logger))

	auth.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	auth.HandleFunc("/clubs", s.handleListClubs).Methods(http.MethodGet)
	auth.HandleFunc("/clubs/{id}", s.handleGetClub).Methods(http.MethodGet)
	auth.HandleFunc("/clubs/{id}/dashboard", s.handleDashboard).Methods(http.MethodGet)
	auth.HandleFunc("/clubs/{id}/players/{name}", s.handlePlayerSummary).Methods(http.MethodGet)
	auth.HandleFunc("/clubs/{id}/standings", s.handleStandings).Methods(http.MethodGet)
	auth.HandleFunc("/clubs/{id}/handicaps", s.handleHandicaps).Methods(http.MethodGet)

	admin := auth.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminRequired)

	admin.HandleFunc("/clubs", s.handleCreateClub).Methods(http.MethodPost)
	admin.HandleFunc("/clubs/{id}", s.handleDeleteClub).Methods(http.MethodDelete)
	admin.HandleFunc("/clubs/{id}/members/{memberID}/link", s.handleLinkMember).Methods(http.MethodPut)
	admin.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	admin.HandleFunc("/upload/targets", s.handleUploadTargets).Methods(http.MethodGet)
	admin.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/role", s.handleUpdateRole).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/club", s.handleAssignClub).Methods(http.MethodPut)
	admin.HandleFunc("/analytics", s.handleAnalytics).Methods(http.MethodGet)
	admin.HandleFunc("/notifications", s.handleNotificationFeed).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/read-all", s.handleMarkAllRead).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/{id}/read", s.handleMarkRead).Methods(http.MethodPost)
	admin.HandleFunc("/notifications/ws", s.handleNotificationSocket).Methods(http.MethodGet)

	return root
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
