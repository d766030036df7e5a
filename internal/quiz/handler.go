package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

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

type CreateQuizRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
	TimeLimit   int    `json:"time_limit" validate:"omitempty,min=1"`
}

type UpdateQuizRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft published"`
	TimeLimit   *int    `json:"time_limit" validate:"omitempty,min=1"`
}

type AddQuestionRequest struct {
	QuestionText  string   `json:"question_text" validate:"required,min=10"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points" validate:"omitempty,min=1"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			filter.CategoryID = uint(id)
		}
	}
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))

	quizzes, err := h.service.ListQuizzes(filter)
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Failed to fetch quizzes")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"quizzes": quizzes})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	callerID, _ := auth.CallerID(r)
	detail, err := h.service.GetQuiz(quizID, callerID, auth.CallerRole(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Quiz not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to fetch quiz")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"quiz": detail})
}

func (h *Handler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	callerID, _ := auth.CallerID(r)
	questions, err := h.service.GetQuestions(quizID, callerID, auth.CallerRole(r))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Quiz not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to fetch questions")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CallerID(r)
	if !ok {
		web.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.service.CreateQuiz(callerID, CreateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		TimeLimit:   req.TimeLimit,
	})
	if err != nil {
		web.Error(w, http.StatusInternalServerError, "Error creating quiz")
		return
	}

	web.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Quiz created successfully",
		"quizId":  quiz.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	callerID, _ := auth.CallerID(r)

	var req UpdateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Status is case-insensitive on input; lowercase before the oneof check.
	if req.Status != nil {
		lowered := strings.ToLower(*req.Status)
		req.Status = &lowered
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.service.UpdateQuiz(quizID, callerID, auth.CallerRole(r), UpdateQuizInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
		TimeLimit:   req.TimeLimit,
	})
	if err != nil {
		writeQuizError(w, err, "Error updating quiz")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Quiz updated successfully"})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	callerID, _ := auth.CallerID(r)

	if err := h.service.DeleteQuiz(quizID, callerID, auth.CallerRole(r)); err != nil {
		writeQuizError(w, err, "Error deleting quiz")
		return
	}

	web.JSON(w, http.StatusOK, map[string]string{"message": "Quiz deleted successfully"})
}

func (h *Handler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	callerID, _ := auth.CallerID(r)

	var req AddQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		web.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.service.AddQuestion(quizID, callerID, auth.CallerRole(r), AddQuestionInput{
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Points:        req.Points,
	})
	if err != nil {
		writeQuizError(w, err, "Error adding question")
		return
	}

	web.JSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Question added successfully",
		"questionId": question.ID,
	})
}

func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	quizID, err := pathID(r)
	if err != nil {
		web.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}
	callerID, _ := auth.CallerID(r)

	attempts, err := h.service.UserAttempts(quizID, callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.Error(w, http.StatusNotFound, "Quiz not found")
			return
		}
		web.Error(w, http.StatusInternalServerError, "Failed to fetch results")
		return
	}
	web.JSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}

func writeQuizError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.Error(w, http.StatusNotFound, "Quiz not found")
	case errors.Is(err, ErrForbidden):
		web.Error(w, http.StatusForbidden, "Not authorized to modify this quiz")
	default:
		web.Error(w, http.StatusInternalServerError, fallback)
	}
}

func pathID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}
