package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/examtrack/examtrack/internal/auth"
	"github.com/examtrack/examtrack/internal/rbac"
)

// POST /api/auth/login  {"username":"...","password":"..."}
func LoginHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}
		user, token, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid username or password")
				return
			}
			writeError(w, http.StatusInternalServerError, "Login failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    user,
			"token":   token,
		})
	}
}

// POST /api/auth/verify  {"token":"..."}
func VerifyHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		user, err := svc.Verify(r.Context(), req.Token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			writeError(w, http.StatusInternalServerError, "Token verification failed", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid": true,
			"user":  user,
		})
	}
}

// POST /api/auth/change-password (token-authenticated)
func ChangePasswordHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(rbac.SubjectFromContext(r.Context()), 10, 64)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		var req struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		if req.CurrentPassword == "" || req.NewPassword == "" {
			writeError(w, http.StatusBadRequest, "Current password and new password are required")
			return
		}
		if err := svc.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, "Current password is incorrect")
			case errors.Is(err, auth.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				writeError(w, http.StatusInternalServerError, "Failed to change password", err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
	}
}
