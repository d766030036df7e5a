package quiz

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

var (
	ErrNotFound = errors.New("quiz not found")
	// ErrForbidden is returned when the caller neither owns the quiz nor
	// holds the admin role.
	ErrForbidden = errors.New("not authorized to modify this quiz")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListQuizzes(filter ListFilter) ([]models.QuizSummary, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	filter.Status = strings.ToLower(filter.Status)
	return s.repo.ListQuizzes(filter)
}

// GetQuiz returns a quiz with its questions. Correct answers are included
// only when the caller owns the quiz or is an admin.
func (s *Service) GetQuiz(quizID, callerID uint, callerRole string) (*models.QuizDetail, error) {
	summary, err := s.repo.GetQuizSummary(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questions, err := s.repo.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}

	includeAnswers := canModify(summary.CreatedBy, callerID, callerRole)
	dtos := make([]models.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO(includeAnswers)
	}

	return &models.QuizDetail{QuizSummary: *summary, Questions: dtos}, nil
}

func (s *Service) GetQuestions(quizID, callerID uint, callerRole string) ([]models.QuestionDTO, error) {
	quiz, err := s.repo.GetQuiz(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	questions, err := s.repo.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}

	includeAnswers := canModify(quiz.CreatedBy, callerID, callerRole)
	dtos := make([]models.QuestionDTO, len(questions))
	for i, q := range questions {
		dtos[i] = q.ToDTO(includeAnswers)
	}
	return dtos, nil
}

type CreateQuizInput struct {
	Title       string
	Description string
	CategoryID  *uint
	TimeLimit   int
}

func (s *Service) CreateQuiz(callerID uint, input CreateQuizInput) (*models.Quiz, error) {
	quiz := &models.Quiz{
		Title:       input.Title,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		CreatedBy:   callerID,
		Status:      models.QuizStatusDraft,
		TimeLimit:   input.TimeLimit,
	}
	if err := s.repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

type UpdateQuizInput struct {
	Title       *string
	Description *string
	CategoryID  *uint
	Status      *string
	TimeLimit   *int
}

func (s *Service) UpdateQuiz(quizID, callerID uint, callerRole string, input UpdateQuizInput) error {
	quiz, err := s.loadOwned(quizID, callerID, callerRole)
	if err != nil {
		return err
	}

	if input.Title != nil {
		quiz.Title = *input.Title
	}
	if input.Description != nil {
		quiz.Description = *input.Description
	}
	if input.CategoryID != nil {
		quiz.CategoryID = input.CategoryID
	}
	if input.Status != nil {
		quiz.Status = strings.ToLower(*input.Status)
	}
	if input.TimeLimit != nil {
		quiz.TimeLimit = *input.TimeLimit
	}

	return s.repo.UpdateQuiz(quiz)
}

func (s *Service) DeleteQuiz(quizID, callerID uint, callerRole string) error {
	if _, err := s.loadOwned(quizID, callerID, callerRole); err != nil {
		return err
	}
	return s.repo.DeleteQuiz(quizID)
}

type AddQuestionInput struct {
	QuestionText  string
	Options       []string
	CorrectAnswer string
	Explanation   string
	Points        int
}

func (s *Service) AddQuestion(quizID, callerID uint, callerRole string, input AddQuestionInput) (*models.Question, error) {
	if _, err := s.loadOwned(quizID, callerID, callerRole); err != nil {
		return nil, err
	}

	if input.Points <= 0 {
		input.Points = 1
	}
	question := &models.Question{
		QuizID:        quizID,
		QuestionText:  input.QuestionText,
		QuestionType:  "multiple_choice",
		CorrectAnswer: input.CorrectAnswer,
		Explanation:   input.Explanation,
		Points:        input.Points,
	}
	if err := question.SetOptions(input.Options); err != nil {
		return nil, err
	}

	if err := s.repo.CreateQuestion(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *Service) UserAttempts(quizID, userID uint) ([]models.AttemptWithQuiz, error) {
	if _, err := s.repo.GetQuiz(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.repo.UserAttempts(quizID, userID)
}

func (s *Service) loadOwned(quizID, callerID uint, callerRole string) (*models.Quiz, error) {
	quiz, err := s.repo.GetQuiz(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !canModify(quiz.CreatedBy, callerID, callerRole) {
		return nil, ErrForbidden
	}
	return quiz, nil
}

func canModify(ownerID, callerID uint, callerRole string) bool {
	return callerRole == models.RoleAdmin || ownerID == callerID
}
