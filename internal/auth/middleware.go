package auth

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/examtrack/examtrack/internal/rbac"
)

// Middleware requires a Bearer token, resolves it to a user and puts the
// user's id and role into the request context for RBAC.
func Middleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				unauthorized(w, "No token provided")
				return
			}
			u, err := s.Verify(r.Context(), strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}
			ctx := rbac.WithRole(r.Context(), u.Role)
			ctx = rbac.WithSubject(ctx, strconv.FormatInt(u.ID, 10))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
