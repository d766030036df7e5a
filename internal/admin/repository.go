package admin

import (
	"time"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type UserStats struct {
	TotalUsers         int `json:"total_users"`
	ActiveUsers        int `json:"active_users"`
	NewUsersLast30Days int `json:"new_users_last_30_days"`
}

type QuizStats struct {
	TotalQuizzes         int `json:"total_quizzes"`
	PublishedQuizzes     int `json:"published_quizzes"`
	NewQuizzesLast30Days int `json:"new_quizzes_last_30_days"`
}

type AttemptStats struct {
	TotalAttempts      int      `json:"total_attempts"`
	AverageScore       *float64 `json:"average_score"`
	UniqueParticipants int      `json:"unique_participants"`
}

func (r *Repository) UserStats(since time.Time) (*UserStats, error) {
	var stats UserStats
	err := r.db.Raw(`
		SELECT COUNT(*) AS total_users,
		       COUNT(CASE WHEN status = ? THEN 1 END) AS active_users,
		       COUNT(CASE WHEN created_at >= ? THEN 1 END) AS new_users_last_30_days
		FROM users
	`, models.StatusActive, since).Scan(&stats).Error
	return &stats, err
}

func (r *Repository) QuizStats(since time.Time) (*QuizStats, error) {
	var stats QuizStats
	err := r.db.Raw(`
		SELECT COUNT(*) AS total_quizzes,
		       COUNT(CASE WHEN status = ? THEN 1 END) AS published_quizzes,
		       COUNT(CASE WHEN created_at >= ? THEN 1 END) AS new_quizzes_last_30_days
		FROM quizzes
	`, models.QuizStatusPublished, since).Scan(&stats).Error
	return &stats, err
}

func (r *Repository) QuestionCount() (int64, error) {
	var count int64
	err := r.db.Model(&models.Question{}).Count(&count).Error
	return count, err
}

func (r *Repository) AttemptStats() (*AttemptStats, error) {
	var stats AttemptStats
	err := r.db.Raw(`
		SELECT COUNT(*) AS total_attempts,
		       AVG(score) AS average_score,
		       COUNT(DISTINCT user_id) AS unique_participants
		FROM quiz_attempts
	`).Scan(&stats).Error
	return &stats, err
}

type UserFilter struct {
	Status string
	Role   string
	Limit  int
	Offset int
}

func (r *Repository) ListUsers(filter UserFilter) ([]models.User, error) {
	query := r.db.Model(&models.User{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error
	return users, err
}

func (r *Repository) GetUser(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) DeleteUser(id uint) (int64, error) {
	result := r.db.Delete(&models.User{}, id)
	return result.RowsAffected, result.Error
}

type AttemptRow struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at"`
}

type AttemptFilter struct {
	QuizID uint
	UserID uint
	Limit  int
	Offset int
}

func (r *Repository) ListAttempts(filter AttemptFilter) ([]AttemptRow, error) {
	query := `
		SELECT qa.id, qa.user_id, qa.quiz_id, qa.score, qa.total_questions,
		       qa.time_taken, qa.completed_at,
		       q.title AS quiz_title, u.name AS user_name, u.email AS user_email
		FROM quiz_attempts qa
		JOIN quizzes q ON qa.quiz_id = q.id
		JOIN users u ON qa.user_id = u.id
		WHERE 1=1`
	args := []interface{}{}

	if filter.QuizID != 0 {
		query += " AND qa.quiz_id = ?"
		args = append(args, filter.QuizID)
	}
	if filter.UserID != 0 {
		query += " AND qa.user_id = ?"
		args = append(args, filter.UserID)
	}

	query += " ORDER BY qa.completed_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	var attempts []AttemptRow
	err := r.db.Raw(query, args...).Scan(&attempts).Error
	return attempts, err
}
