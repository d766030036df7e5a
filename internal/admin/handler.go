package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"mcq-platform/internal/auth"
	"mcq-platform/internal/web"
)

var validate = validator.New()

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type UpdateUserRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=active inactive banned"`
	Role   *string `json:"role" validate:"omitempty,oneof=user admin"`
}

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats()
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"statistics": stats})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := UserFilter{
		Status: r.URL.Query().Get("status"),
		Role:   r.URL.Query().Get("role"),
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.service.ListUsers(filter)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status == nil && req.Role == nil {
		web.Error(w, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := h.service.UpdateUser(id, req.Status, req.Role); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			web.Error(w, http.StatusNotFound, "User not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Error updating user")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "User updated successfully"})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	callerID, _ := auth.CallerID(r)

	if err := h.service.DeleteUser(id, callerID); err != nil {
		switch {
		case errors.Is(err, ErrSelfDelete):
			web.Error(w, http.StatusBadRequest, "Cannot delete your own account")
		case errors.Is(err, ErrUserNotFound):
			web.Error(w, http.StatusNotFound, "User not found")
		default:
			web.Error(w, http.StatusInternalServerError, "Error deleting user")
		}
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *Handler) ListAttempts(w http.ResponseWriter, r *http.Request) {
	filter := AttemptFilter{}
	if raw := r.URL.Query().Get("quiz_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.QuizID = uint(id)
		}
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.UserID = uint(id)
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	attempts, err := h.service.ListAttempts(filter)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch attempts")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
