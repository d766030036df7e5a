package report

import "mcq-platform/internal/models"

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Leaderboard() ([]models.LeaderboardRow, error) {
	return s.repo.Leaderboard()
}

func (s *Service) UserQuizHistory(userID uint) ([]models.QuizHistoryRow, error) {
	return s.repo.UserQuizHistory(userID)
}

func (s *Service) QuizStats() ([]models.QuizStatsRow, error) {
	return s.repo.QuizStats()
}

func (s *Service) PlatformStats() (*models.PlatformStats, error) {
	return s.repo.PlatformStats()
}
