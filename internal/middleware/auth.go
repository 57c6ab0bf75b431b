package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// userIDKey is the context key under which the authenticated user's ID is
// stored. Unexported so callers must go through UserID.
type userIDKey struct{}

// UserID returns the authenticated user's ID from the request context.
// The second return value is false when the auth middleware did not run.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return id, ok
}

// WithUserID returns ctx carrying the given user ID.
// Exposed for handler tests, which have no middleware in front of them.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// NewAuth returns a middleware that authenticates requests.
//
// With a non-empty secret it requires a Bearer token signed with HS256 whose
// "sub" claim is the user's UUID — the shape Supabase-style auth services
// issue. With an empty secret every request runs as demoUser, which mirrors
// the unconfigured demo mode of the frontend without any global toggle:
// main decides once, at wiring time.
//
// /healthz is exempt so load-balancer probes never need a token.
func NewAuth(secret string, demoUser uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" {
				next.ServeHTTP(w, r)
				return
			}

			if secret == "" {
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), demoUser)))
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				unauthorized(w, "missing bearer token")
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				unauthorized(w, "invalid token")
				return
			}

			sub, err := tok.Claims.GetSubject()
			if err != nil {
				unauthorized(w, "invalid claims")
				return
			}
			userID, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w, "invalid subject")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// unauthorized writes a 401 JSON error body matching the handler error shape.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing useful to do with a write error here.
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
