package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/FolioForge/portfolio-backend/internal/middleware"
	"github.com/FolioForge/portfolio-backend/internal/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// One message for every failure mode, so responses can't be used to
		// probe which emails exist.
		utils.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   session.Token,
		"user":    user,
	})
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	// The guard already admitted this token; deleting it is all that's left.
	if err := h.svc.Logout(r.Context(), middleware.BearerToken(r)); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to end session")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out",
	})
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.svc.Register(r.Context(), req.Email, req.Password, req.DisplayName, req.Role)
	if err != nil {
		if errors.Is(err, ErrDuplicateIdentity) {
			utils.WriteError(w, http.StatusConflict, "Email already registered")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"user":    user,
	})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *Handler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		utils.WriteError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}

	if err := h.svc.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.WriteError(w, http.StatusUnauthorized, "Invalid current password")
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Password updated; log in again",
	})
}

type statusRequest struct {
	Active bool `json:"active"`
}

// StatusHandler lets an admin enable or disable an account. Disabling takes
// effect on the target's next request.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.WriteError(w, http.StatusBadRequest, "User id is required")
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	user, err := h.svc.SetUserStatus(r.Context(), userID, req.Active)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    user,
	})
}

// DeleteUserHandler hard-deletes an account. Admins cannot delete themselves;
// deactivate instead so the audit trail survives.
func (h *Handler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.WriteError(w, http.StatusBadRequest, "User id is required")
		return
	}

	if self, _ := utils.GetUserIDFromContext(r.Context()); self == userID {
		utils.WriteError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}

	if err := h.svc.DeleteUser(r.Context(), userID); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
