package middleware

import (
	"net/http"
	"slices"
	"strings"

	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer JWT and stores the user id and role in the request context
func Auth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseForbidden(w, "Missing authorization token")
				return
			}

			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				utils.ResponseForbidden(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(strings.TrimSpace(token), secret)
			if err != nil {
				logger.Warn("Invalid token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseForbidden(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ACL lets the request through only when the authenticated role is one of roles
func ACL(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseForbidden(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if !slices.Contains(roles, role) {
				logger.Warn("ACL: access denied",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
