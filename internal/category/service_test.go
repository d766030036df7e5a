package category

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mcq-platform/internal/models"
	"mcq-platform/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestDeleteBlockedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	category, err := service.Create("Science", "Science quizzes")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	quiz := models.Quiz{Title: "Physics basics", CategoryID: &category.ID, CreatedBy: 1}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	if err := service.Delete(category.ID); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}

	// Both the category and the quiz must be untouched after the refusal.
	if _, err := service.Get(category.ID); err != nil {
		t.Fatalf("category should survive a blocked delete: %v", err)
	}
	var stored models.Quiz
	if err := db.First(&stored, quiz.ID).Error; err != nil {
		t.Fatalf("quiz should survive a blocked delete: %v", err)
	}
	if stored.CategoryID == nil || *stored.CategoryID != category.ID {
		t.Fatalf("quiz lost its category reference")
	}

	// Once the quiz is gone the delete succeeds.
	if err := db.Delete(&models.Quiz{}, quiz.ID).Error; err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if err := service.Delete(category.ID); err != nil {
		t.Fatalf("delete after quiz removal: %v", err)
	}
	if _, err := service.Get(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	if _, err := service.Create("History", ""); err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := service.Create("History", "another"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}

	other, err := service.Create("Geography", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	name := "History"
	if err := service.Update(other.ID, &name, nil); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken on update, got %v", err)
	}

	// Renaming a category to its own current name is fine.
	name = "Geography"
	if err := service.Update(other.ID, &name, nil); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}

func TestGetIncludesOnlyPublishedQuizzes(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	category, err := service.Create("Math", "")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	published := models.Quiz{Title: "Algebra", CategoryID: &category.ID, CreatedBy: 1, Status: models.QuizStatusPublished}
	draft := models.Quiz{Title: "Calculus", CategoryID: &category.ID, CreatedBy: 1, Status: models.QuizStatusDraft}
	if err := db.Create(&published).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	detail, err := service.Get(category.ID)
	if err != nil {
		t.Fatalf("get category: %v", err)
	}
	if len(detail.Quizzes) != 1 {
		t.Fatalf("expected 1 published quiz, got %d", len(detail.Quizzes))
	}
	if detail.Quizzes[0].Title != "Algebra" {
		t.Fatalf("unexpected quiz %q", detail.Quizzes[0].Title)
	}

	list, err := service.List()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 category, got %d", len(list))
	}
	if list[0].QuizCount != 2 {
		t.Fatalf("expected quiz count 2, got %d", list[0].QuizCount)
	}
}
