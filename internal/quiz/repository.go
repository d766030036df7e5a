package quiz

import (
	"log"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// quizColumns is the shared projection for catalog reads. The question
// count is a live aggregate, so it can never drift from the questions table.
const quizColumns = `
	q.id, q.title, q.description, q.category_id, q.created_by, q.status,
	q.time_limit, q.created_at, q.updated_at,
	c.name AS category, u.name AS creator_name,
	(SELECT COUNT(*) FROM questions WHERE questions.quiz_id = q.id) AS total_questions`

type ListFilter struct {
	CategoryID uint
	Status     string
	Limit      int
	Offset     int
}

func (r *Repository) ListQuizzes(filter ListFilter) ([]models.QuizSummary, error) {
	query := `
		SELECT ` + quizColumns + `
		FROM quizzes q
		LEFT JOIN categories c ON q.category_id = c.id
		LEFT JOIN users u ON q.created_by = u.id
		WHERE 1=1`
	args := []interface{}{}

	if filter.CategoryID != 0 {
		query += " AND q.category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.Status != "" {
		query += " AND q.status = ?"
		args = append(args, filter.Status)
	}

	query += " ORDER BY q.created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	var quizzes []models.QuizSummary
	err := r.db.Raw(query, args...).Scan(&quizzes).Error
	if err != nil {
		log.Printf("Error listing quizzes: %v", err)
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) GetQuizSummary(quizID uint) (*models.QuizSummary, error) {
	var quizzes []models.QuizSummary
	err := r.db.Raw(`
		SELECT `+quizColumns+`
		FROM quizzes q
		LEFT JOIN categories c ON q.category_id = c.id
		LEFT JOIN users u ON q.created_by = u.id
		WHERE q.id = ?
	`, quizID).Scan(&quizzes).Error
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &quizzes[0], nil
}

func (r *Repository) GetQuiz(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.First(&quiz, quizID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *Repository) GetQuestions(quizID uint) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error
	if err != nil {
		log.Printf("Error getting questions for quiz %d: %v", quizID, err)
		return nil, err
	}
	return questions, nil
}

func (r *Repository) CreateQuiz(quiz *models.Quiz) error {
	err := r.db.Create(quiz).Error
	if err != nil {
		log.Printf("Error creating quiz: %v", err)
		return err
	}
	log.Printf("Created quiz with ID: %d", quiz.ID)
	return nil
}

func (r *Repository) UpdateQuiz(quiz *models.Quiz) error {
	return r.db.Save(quiz).Error
}

// DeleteQuiz removes a quiz and its questions in one transaction.
func (r *Repository) DeleteQuiz(quizID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quizID).Error
	})
}

func (r *Repository) CreateQuestion(question *models.Question) error {
	err := r.db.Create(question).Error
	if err != nil {
		log.Printf("Error adding question to quiz %d: %v", question.QuizID, err)
		return err
	}
	return nil
}

// UserAttempts lists one user's attempts at one quiz, newest first.
func (r *Repository) UserAttempts(quizID, userID uint) ([]models.AttemptWithQuiz, error) {
	var attempts []models.AttemptWithQuiz
	err := r.db.Raw(`
		SELECT qa.id, qa.user_id, qa.quiz_id, q.title AS quiz_title,
		       qa.score, qa.total_questions, qa.time_taken, qa.completed_at
		FROM quiz_attempts qa
		JOIN quizzes q ON qa.quiz_id = q.id
		WHERE qa.quiz_id = ? AND qa.user_id = ?
		ORDER BY qa.completed_at DESC
	`, quizID, userID).Scan(&attempts).Error
	return attempts, err
}
