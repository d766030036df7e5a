package category

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

func (r *Repository) ListWithCounts() ([]models.CategoryWithCount, error) {
	var categories []models.CategoryWithCount
	err := r.db.Raw(`
		SELECT c.id, c.name, c.description, c.created_at,
		       COUNT(q.id) AS quiz_count
		FROM categories c
		LEFT JOIN quizzes q ON c.id = q.category_id
		GROUP BY c.id, c.name, c.description, c.created_at
		ORDER BY c.name
	`).Scan(&categories).Error
	return categories, err
}

func (r *Repository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// PublishedQuizzes lists the published quizzes in a category, newest first.
func (r *Repository) PublishedQuizzes(categoryID uint) ([]models.QuizSummary, error) {
	var quizzes []models.QuizSummary
	err := r.db.Raw(`
		SELECT q.id, q.title, q.description, q.status, q.time_limit, q.created_at,
		       (SELECT COUNT(*) FROM questions WHERE questions.quiz_id = q.id) AS total_questions
		FROM quizzes q
		WHERE q.category_id = ? AND q.status = ?
		ORDER BY q.created_at DESC
	`, categoryID, models.QuizStatusPublished).Scan(&quizzes).Error
	return quizzes, err
}

func (r *Repository) NameExists(name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("name = ? AND id != ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) QuizCount(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Quiz{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *Repository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *Repository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}
