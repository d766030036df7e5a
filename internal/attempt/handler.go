package attempt

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

type SubmitRequest struct {
	Answers   []AnswerSubmission `json:"answers" validate:"required"`
	TimeTaken int                `json:"time_taken"`
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["id"]
	quizID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	callerID, ok := auth.CallerID(r)
	if !ok {
		web.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.SubmitAttempt(uint(quizID), callerID, req.Answers, req.TimeTaken)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			web.Error(w, http.StatusNotFound, "Quiz not found")
		case errors.Is(err, ErrEmptyQuiz):
			web.Error(w, http.StatusBadRequest, "Quiz has no questions")
		default:
			web.Error(w, http.StatusInternalServerError, "Error saving quiz attempt")
		}
		return
	}

	web.JSON(w, http.StatusOK, result)
}
