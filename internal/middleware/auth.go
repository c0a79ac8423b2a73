package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"darts-tracker/internal/api"
	"darts-tracker/internal/constants"
	"darts-tracker/internal/domain"
	"darts-tracker/internal/repository"

	"github.com/rs/zerolog"
)

const profileKey contextKey = "profile"

// Auth verifies the bearer token with the identity service and attaches the
// matching profile to the request context, creating the profile on first
// sight.
func Auth(identity *api.IdentityClient, profiles *repository.ProfileRepository, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), constants.IdentityTimeout)
			defer cancel()

			ident, err := identity.VerifyToken(ctx, token)
			if err != nil {
				if errors.Is(err, api.ErrInvalidToken) {
					writeAuthError(w, http.StatusUnauthorized, "invalid token")
					return
				}
				logger.Error().Err(err).Msg("token verification failed")
				writeAuthError(w, http.StatusBadGateway, "identity service unavailable")
				return
			}

			profile, err := profiles.Ensure(ctx, ident.ID, ident.Email, ident.Name)
			if err != nil {
				logger.Error().Err(err).Str("user_id", ident.ID).Msg("failed to load profile")
				writeAuthError(w, http.StatusInternalServerError, "failed to load profile")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), profileKey, profile)))
		})
	}
}

// AdminRequired rejects requests whose profile is not an admin. It must run
// inside Auth.
func AdminRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		profile := GetProfile(r.Context())
		if profile == nil || profile.Role != domain.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetProfile(ctx context.Context) *domain.Profile {
	if p, ok := ctx.Value(profileKey).(*domain.Profile); ok {
		return p
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
