package report

import (
	"log"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

// Repository serves the read-only derived views over the attempt ledger.
// Every divide uses NULLIF so zero-denominator attempts drop out of the
// averages instead of dragging them to zero.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Leaderboard() ([]models.LeaderboardRow, error) {
	var rows []models.LeaderboardRow
	err := r.db.Raw(`
		SELECT
		  u.id,
		  u.name,
		  u.email,
		  COUNT(DISTINCT qa.quiz_id) AS quizzes_attempted,
		  COUNT(DISTINCT qa.id) AS total_attempts,
		  ROUND(CAST(AVG(CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100) AS NUMERIC), 2) AS average_accuracy,
		  SUM(qa.score) AS total_score,
		  ROUND(AVG(qa.time_taken), 0) AS avg_time_taken,
		  MAX(qa.completed_at) AS last_attempt
		FROM users u
		LEFT JOIN quiz_attempts qa ON u.id = qa.user_id
		WHERE u.role = ?
		GROUP BY u.id, u.name, u.email
		ORDER BY total_score DESC NULLS LAST, average_accuracy DESC NULLS LAST
		LIMIT 100
	`, models.RoleUser).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching leaderboard: %v", err)
		return nil, err
	}
	return rows, nil
}

func (r *Repository) UserQuizHistory(userID uint) ([]models.QuizHistoryRow, error) {
	var rows []models.QuizHistoryRow
	err := r.db.Raw(`
		SELECT
		  qa.id AS attempt_id,
		  q.id AS quiz_id,
		  q.title AS quiz_title,
		  c.name AS category,
		  qa.score,
		  qa.total_questions,
		  ROUND(CAST(CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100 AS NUMERIC), 2) AS accuracy,
		  qa.time_taken,
		  qa.completed_at,
		  CASE
		    WHEN (CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100) >= 80 THEN 'Pass'
		    WHEN (CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100) >= 50 THEN 'Moderate'
		    ELSE 'Fail'
		  END AS result
		FROM quiz_attempts qa
		JOIN quizzes q ON qa.quiz_id = q.id
		LEFT JOIN categories c ON q.category_id = c.id
		WHERE qa.user_id = ?
		ORDER BY qa.completed_at DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching quiz history for user %d: %v", userID, err)
		return nil, err
	}
	return rows, nil
}

func (r *Repository) QuizStats() ([]models.QuizStatsRow, error) {
	var rows []models.QuizStatsRow
	err := r.db.Raw(`
		SELECT
		  q.id,
		  q.title,
		  c.name AS category,
		  COUNT(DISTINCT qa.user_id) AS total_participants,
		  ROUND(CAST(AVG(CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100) AS NUMERIC), 2) AS avg_accuracy,
		  ROUND(AVG(qa.time_taken), 0) AS avg_time_taken,
		  COUNT(qa.id) AS total_attempts
		FROM quizzes q
		LEFT JOIN quiz_attempts qa ON q.id = qa.quiz_id
		LEFT JOIN categories c ON q.category_id = c.id
		WHERE q.status = ?
		GROUP BY q.id, q.title, c.name
		ORDER BY total_participants DESC
	`, models.QuizStatusPublished).Scan(&rows).Error
	if err != nil {
		log.Printf("Error fetching quiz stats: %v", err)
		return nil, err
	}
	return rows, nil
}

func (r *Repository) PlatformStats() (*models.PlatformStats, error) {
	var stats models.PlatformStats
	err := r.db.Raw(`
		SELECT
		  (SELECT COUNT(*) FROM users WHERE role = ?) AS total_users,
		  (SELECT COUNT(*) FROM quizzes WHERE status = ?) AS total_quizzes,
		  COUNT(qa.id) AS total_attempts,
		  ROUND(CAST(AVG(CAST(qa.score AS FLOAT) / NULLIF(qa.total_questions, 0) * 100) AS NUMERIC), 2) AS overall_accuracy,
		  ROUND(AVG(qa.time_taken), 0) AS avg_time_per_attempt
		FROM quiz_attempts qa
		JOIN users u ON u.id = qa.user_id AND u.role = ?
		JOIN quizzes q ON q.id = qa.quiz_id AND q.status = ?
	`, models.RoleUser, models.QuizStatusPublished, models.RoleUser, models.QuizStatusPublished).
		Scan(&stats).Error
	if err != nil {
		log.Printf("Error fetching platform stats: %v", err)
		return nil, err
	}
	return &stats, nil
}
