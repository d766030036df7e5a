package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

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

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type QuizHistoryRequest struct {
	QuizID uint `json:"quizId" validate:"required"`
}

func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)

	user, err := h.service.Profile(callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "User not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateProfile(callerID, req.Name, req.Email); err != nil {
		switch {
		case errors.Is(err, ErrNothingToUpdate):
			web.Error(w, http.StatusBadRequest, "No valid fields to update")
		case errors.Is(err, ErrEmailTaken):
			web.Error(w, http.StatusBadRequest, "Email already in use")
		case errors.Is(err, ErrNotFound):
			web.Error(w, http.StatusNotFound, "User not found")
		default:
			web.Error(w, http.StatusInternalServerError, "Error updating profile")
		}
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.ChangePassword(callerID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, ErrWrongPassword):
			web.Error(w, http.StatusBadRequest, "Current password is incorrect")
		case errors.Is(err, ErrNotFound):
			web.Error(w, http.StatusNotFound, "User not found")
		default:
			web.Error(w, http.StatusInternalServerError, "Error updating password")
		}
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

func (h *Handler) Attempts(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	attempts, err := h.service.Attempts(callerID, limit, offset)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch attempts")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)

	stats, recent, err := h.service.Statistics(callerID)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch statistics")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{
		"statistics":     stats,
		"recentAttempts": recent,
	})
}

func (h *Handler) RecordQuizHistory(w http.ResponseWriter, r *http.Request) {
	callerID, _ := auth.CallerID(r)

	var req QuizHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, "Quiz ID required")
		return
	}

	entry, err := h.service.RecordQuizSelection(callerID, req.QuizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			web.Error(w, http.StatusNotFound, "Quiz not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Error recording quiz history")
		return
	}

	web.JSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"historyId": entry.ID,
	})
}
