package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/models/api"
	"github.com/de-tools/booking-atlas/pkg/services/auth"
)

type contextKey string

const adminIDKey contextKey = "admin_id"

// AdminID returns the authenticated staff id, if any.
func AdminID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(adminIDKey).(string)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token and stores
// the token subject on the request context.
func RequireAuth(svc auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			adminID, err := svc.Verify(token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			reqLogger := zerolog.Ctx(req.Context()).With().Str("admin_id", adminID).Logger()
			ctx := reqLogger.WithContext(req.Context())
			ctx = context.WithValue(ctx, adminIDKey, adminID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(api.Error{Message: message})
}
