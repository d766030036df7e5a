package attempt

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

func (r *Repository) QuizExists(quizID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&count).Error
	return count > 0, err
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

// CreateAttempt persists the attempt and its answer rows as a single unit.
// Any failed insert rolls the whole submission back, so the ledger never
// holds a partial attempt.
func (r *Repository) CreateAttempt(attempt *models.QuizAttempt, answers []models.UserAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}
		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].AttemptID = attempt.ID
		}
		return tx.Create(&answers).Error
	})
}

func (r *Repository) AnswersForAttempt(attemptID uint) ([]models.UserAnswer, error) {
	var answers []models.UserAnswer
	err := r.db.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}
