package report

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"mcq-platform/internal/models"
	"mcq-platform/internal/web"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.Leaderboard()
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}
	if rows == nil {
		rows = []models.LeaderboardRow{}
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"leaderboard": rows})
}

func (h *Handler) UserQuizHistory(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["userId"]
	userID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	rows, err := h.service.UserQuizHistory(uint(userID))
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch user quiz history")
		return
	}
	if rows == nil {
		rows = []models.QuizHistoryRow{}
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"quizHistory": rows})
}

func (h *Handler) QuizStats(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.QuizStats()
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch quiz stats")
		return
	}
	if rows == nil {
		rows = []models.QuizStatsRow{}
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"quizStats": rows})
}

func (h *Handler) PlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlatformStats()
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch platform stats")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
