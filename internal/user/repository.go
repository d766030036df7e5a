package user

import (
	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("email = ? AND id != ?", email, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) Attempts(userID uint, limit, offset int) ([]models.AttemptWithQuiz, error) {
	var attempts []models.AttemptWithQuiz
	err := r.db.Raw(`
		SELECT qa.id, qa.user_id, qa.quiz_id, q.title AS quiz_title,
		       qa.score, qa.total_questions, qa.time_taken, qa.completed_at
		FROM quiz_attempts qa
		JOIN quizzes q ON qa.quiz_id = q.id
		WHERE qa.user_id = ?
		ORDER BY qa.completed_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset).Scan(&attempts).Error
	return attempts, err
}

type AttemptTotals struct {
	TotalAttempts int      `json:"total_attempts"`
	AverageScore  *float64 `json:"average_score"`
	HighestScore  *int     `json:"highest_score"`
	TotalTime     *int     `json:"total_time"`
}

func (r *Repository) AttemptTotals(userID uint) (*AttemptTotals, error) {
	var totals AttemptTotals
	err := r.db.Raw(`
		SELECT COUNT(*) AS total_attempts,
		       AVG(score) AS average_score,
		       MAX(score) AS highest_score,
		       SUM(time_taken) AS total_time
		FROM quiz_attempts
		WHERE user_id = ?
	`, userID).Scan(&totals).Error
	return &totals, err
}

func (r *Repository) RecentAttempts(userID uint, limit int) ([]models.AttemptWithQuiz, error) {
	return r.Attempts(userID, limit, 0)
}

func (r *Repository) QuizExists(quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateHistoryEntry(entry *models.QuizHistoryEntry) error {
	return r.db.Create(entry).Error
}
