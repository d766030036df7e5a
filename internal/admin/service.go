package admin

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrSelfDelete blocks an admin from deleting their own account.
	ErrSelfDelete = errors.New("cannot delete own account")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

type QuestionStats struct {
	TotalQuestions int64 `json:"total_questions"`
}

type DashboardStats struct {
	Users     UserStats     `json:"users"`
	Quizzes   QuizStats     `json:"quizzes"`
	Questions QuestionStats `json:"questions"`
	Attempts  AttemptStats  `json:"attempts"`
}

func (s *Service) DashboardStats() (*DashboardStats, error) {
	since := time.Now().AddDate(0, 0, -30)

	userStats, err := s.repo.UserStats(since)
	if err != nil {
		return nil, err
	}
	quizStats, err := s.repo.QuizStats(since)
	if err != nil {
		return nil, err
	}
	questionCount, err := s.repo.QuestionCount()
	if err != nil {
		return nil, err
	}
	attemptStats, err := s.repo.AttemptStats()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Users:     *userStats,
		Quizzes:   *quizStats,
		Questions: QuestionStats{TotalQuestions: questionCount},
		Attempts:  *attemptStats,
	}, nil
}

func (s *Service) ListUsers(filter UserFilter) ([]models.User, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.ListUsers(filter)
}

func (s *Service) UpdateUser(id uint, status, role *string) error {
	user, err := s.repo.GetUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if status != nil {
		user.Status = *status
	}
	if role != nil {
		user.Role = *role
	}

	return s.repo.UpdateUser(user)
}

func (s *Service) DeleteUser(id, callerID uint) error {
	if id == callerID {
		return ErrSelfDelete
	}

	affected, err := s.repo.DeleteUser(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *Service) ListAttempts(filter AttemptFilter) ([]AttemptRow, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.ListAttempts(filter)
}
