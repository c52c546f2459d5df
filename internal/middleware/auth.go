package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"studydeck/internal/auth"
	"studydeck/internal/domain/repositories"
	"studydeck/internal/httputil"
)

// Auth verifies the bearer token on every request, resolves the verified
// identity to an internal user (provisioning one on first sight), and puts
// the internal user id into the request context. Health checks pass through.
func Auth(verifier auth.JWTVerifier, users repositories.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			user, err := users.GetOrCreateByExternalID(r.Context(), claims.Subject, claims.Email)
			if err != nil {
				logger.Error("failed to resolve user", "subject", claims.Subject, "error", err)
				httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, user.ID))
		})
	}
}
