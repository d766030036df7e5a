package user

import (
	"errors"
	"math"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrNothingToUpdate = errors.New("no valid fields to update")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Profile(userID uint) (*models.User, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(userID uint, name, email *string) error {
	if name == nil && email == nil {
		return ErrNothingToUpdate
	}

	user, err := s.Profile(userID)
	if err != nil {
		return err
	}

	if email != nil {
		taken, err := s.repo.EmailTakenByOther(*email, userID)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}

	return s.repo.Update(user)
}

func (s *Service) ChangePassword(userID uint, current, next string) error {
	user, err := s.Profile(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	return s.repo.Update(user)
}

func (s *Service) Attempts(userID uint, limit, offset int) ([]models.AttemptWithQuiz, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.Attempts(userID, limit, offset)
}

type Statistics struct {
	TotalAttempts  int `json:"totalAttempts"`
	AverageScore   int `json:"averageScore"`
	HighestScore   int `json:"highestScore"`
	TotalTimeSpent int `json:"totalTimeSpent"`
}

func (s *Service) Statistics(userID uint) (*Statistics, []models.AttemptWithQuiz, error) {
	totals, err := s.repo.AttemptTotals(userID)
	if err != nil {
		return nil, nil, err
	}

	stats := &Statistics{TotalAttempts: totals.TotalAttempts}
	if totals.AverageScore != nil {
		stats.AverageScore = int(math.Round(*totals.AverageScore))
	}
	if totals.HighestScore != nil {
		stats.HighestScore = *totals.HighestScore
	}
	if totals.TotalTime != nil {
		stats.TotalTimeSpent = *totals.TotalTime
	}

	recent, err := s.repo.RecentAttempts(userID, 5)
	if err != nil {
		return nil, nil, err
	}
	return stats, recent, nil
}

// RecordQuizSelection appends to the user's quiz-selection history.
func (s *Service) RecordQuizSelection(userID, quizID uint) (*models.QuizHistoryEntry, error) {
	exists, err := s.repo.QuizExists(quizID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrQuizNotFound
	}

	entry := &models.QuizHistoryEntry{UserID: userID, QuizID: quizID}
	if err := s.repo.CreateHistoryEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}
