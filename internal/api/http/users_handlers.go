package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/examtrack/examtrack/internal/auth"
	"github.com/examtrack/examtrack/internal/rbac"
)

// Roles assignable through the API. The superadmin role can only exist via
// seeding; it is never granted here.
var assignableRoles = map[string]bool{
	auth.RoleUser:          true,
	auth.RoleCmd:           true,
	auth.RoleAdministrator: true,
}

// GET /api/users
func ListUsersHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.ListUsers(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch users", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, users)
	}
}

// POST /api/users
func CreateUserHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		if req.Username == "" || req.Password == "" || req.Role == "" || req.Name == "" {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
		if !assignableRoles[req.Role] {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		user, err := svc.CreateUser(r.Context(), req.Username, req.Password, req.Role, req.Name)
		if err != nil {
			if errors.Is(err, auth.ErrUsernameTaken) {
				writeError(w, http.StatusBadRequest, "Username already exists")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to create user", err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

// PUT /api/users/{id}
func UpdateUserHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		target, err := svc.GetUser(r.Context(), targetID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to update user", err.Error())
			return
		}
		// only the superadmin account itself may edit the superadmin account
		if target.Role == auth.RoleSuperadmin && rbac.SubjectFromContext(r.Context()) != strconv.FormatInt(targetID, 10) {
			writeError(w, http.StatusForbidden, "Cannot edit superadmin account")
			return
		}

		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
			return
		}
		if req.Role != "" && !assignableRoles[req.Role] {
			writeError(w, http.StatusBadRequest, "Invalid role")
			return
		}
		user, err := svc.UpdateUser(r.Context(), targetID, auth.UserUpdate{
			Username: req.Username,
			Password: req.Password,
			Role:     req.Role,
			Name:     req.Name,
		})
		if err != nil {
			if errors.Is(err, auth.ErrUsernameTaken) {
				writeError(w, http.StatusBadRequest, "Username already exists")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to update user", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// DELETE /api/users/{id}
func DeleteUserHandler(svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		target, err := svc.GetUser(r.Context(), targetID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to delete user", err.Error())
			return
		}
		if target.Role == auth.RoleSuperadmin {
			writeError(w, http.StatusForbidden, "Cannot delete superadmin account")
			return
		}
		if err := svc.DeleteUser(r.Context(), targetID); err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to delete user", err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}
