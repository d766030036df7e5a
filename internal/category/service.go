package category

import (
	"errors"

	"gorm.io/gorm"

	"mcq-platform/internal/models"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already exists")
	// ErrInUse guards referential integrity: a category referenced by any
	// quiz cannot be deleted.
	ErrInUse = errors.New("category is in use by quizzes")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]models.CategoryWithCount, error) {
	return s.repo.ListWithCounts()
}

type CategoryDetail struct {
	models.Category
	Quizzes []models.QuizSummary `json:"quizzes"`
}

func (s *Service) Get(id uint) (*CategoryDetail, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quizzes, err := s.repo.PublishedQuizzes(id)
	if err != nil {
		return nil, err
	}

	return &CategoryDetail{Category: *category, Quizzes: quizzes}, nil
}

func (s *Service) Create(name, description string) (*models.Category, error) {
	taken, err := s.repo.NameExists(name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNameTaken
	}

	category := &models.Category{Name: name, Description: description}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Update(id uint, name, description *string) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if name != nil {
		taken, err := s.repo.NameExists(*name, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameTaken
		}
		category.Name = *name
	}
	if description != nil {
		category.Description = *description
	}

	return s.repo.Update(category)
}

func (s *Service) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	count, err := s.repo.QuizCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}

	return s.repo.Delete(id)
}
