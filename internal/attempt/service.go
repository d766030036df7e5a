package attempt

import (
	"errors"
	"log"
	"math"
	"strings"

	"mcq-platform/internal/models"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrEmptyQuiz rejects submissions against quizzes with no questions;
	// nothing is persisted in that case.
	ErrEmptyQuiz = errors.New("quiz has no questions")
)

// AnswerSubmission is one entry of a submitted answer set.
type AnswerSubmission struct {
	QuestionID uint   `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// SubmitAttempt grades a submission against the quiz's questions and writes
// one attempt row plus one answer row per graded entry. Entries whose
// question id does not belong to the quiz are ignored. Questions absent
// from the submission count against totalQuestions but produce no answer
// row.
func (s *Service) SubmitAttempt(quizID, userID uint, submissions []AnswerSubmission, timeTaken int) (*models.SubmitResult, error) {
	exists, err := s.repo.QuizExists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrQuizNotFound
	}

	questions, err := s.repo.GetQuestions(quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}

	byID := make(map[uint]*models.Question, len(questions))
	totalPoints := 0
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
		totalPoints += questions[i].Points
	}

	score := 0
	answers := make([]models.UserAnswer, 0, len(submissions))
	for _, sub := range submissions {
		question, ok := byID[sub.QuestionID]
		if !ok {
			continue
		}

		correct := answerMatches(sub.UserAnswer, question.CorrectAnswer)
		earned := 0
		if correct {
			earned = question.Points
			score += earned
		}
		answers = append(answers, models.UserAnswer{
			QuestionID:   sub.QuestionID,
			Answer:       sub.UserAnswer,
			IsCorrect:    correct,
			PointsEarned: earned,
		})
	}

	record := &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: len(questions),
		TimeTaken:      timeTaken,
	}
	if err := s.repo.CreateAttempt(record, answers); err != nil {
		log.Printf("Error saving attempt for user %d on quiz %d: %v", userID, quizID, err)
		return nil, err
	}

	percentage := 0
	if totalPoints > 0 {
		percentage = int(math.Round(float64(score) / float64(totalPoints) * 100))
	}

	return &models.SubmitResult{
		Message:        "Quiz submitted successfully",
		Score:          score,
		TotalQuestions: len(questions),
		Percentage:     percentage,
	}, nil
}

// answerMatches is the single comparison choke point: case-insensitive,
// exact (non-trimmed) equality against the stored correct-answer string.
func answerMatches(submitted, correct string) bool {
	return strings.EqualFold(submitted, correct)
}
