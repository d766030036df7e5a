package quiz

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

func TestQuestionCountRecomputedOnRead(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	quiz, err := service.CreateQuiz(1, CreateQuizInput{Title: "Counting quiz"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := service.AddQuestion(quiz.ID, 1, models.RoleUser, AddQuestionInput{
			QuestionText:  "A question long enough?",
			Options:       []string{"A", "B"},
			CorrectAnswer: "A",
		})
		if err != nil {
			t.Fatalf("add question: %v", err)
		}
	}

	detail, err := service.GetQuiz(quiz.ID, 1, models.RoleUser)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if detail.TotalQuestions != 3 {
		t.Fatalf("expected 3 questions, got %d", detail.TotalQuestions)
	}

	// Removing a question must be reflected immediately; the count is a
	// live aggregate, not a stored counter.
	if err := db.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
		t.Fatalf("delete questions: %v", err)
	}
	detail, err = service.GetQuiz(quiz.ID, 1, models.RoleUser)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if detail.TotalQuestions != 0 {
		t.Fatalf("expected count 0 after delete, got %d", detail.TotalQuestions)
	}
}

func TestOwnershipChecks(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	quiz, err := service.CreateQuiz(1, CreateQuizInput{Title: "Owned quiz"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	title := "Renamed"
	err = service.UpdateQuiz(quiz.ID, 2, models.RoleUser, UpdateQuizInput{Title: &title})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// Admins can edit anything.
	if err := service.UpdateQuiz(quiz.ID, 2, models.RoleAdmin, UpdateQuizInput{Title: &title}); err != nil {
		t.Fatalf("admin update failed: %v", err)
	}

	status := "Published"
	if err := service.UpdateQuiz(quiz.ID, 1, models.RoleUser, UpdateQuizInput{Status: &status}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}

	// Mixed-case input is normalized at write time.
	var stored models.Quiz
	db.First(&stored, quiz.ID)
	if stored.Status != models.QuizStatusPublished {
		t.Fatalf("expected lowercase status, got %q", stored.Status)
	}
}

func TestCorrectAnswersHiddenFromTakers(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	quiz, err := service.CreateQuiz(1, CreateQuizInput{Title: "Hidden answers"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if _, err := service.AddQuestion(quiz.ID, 1, models.RoleUser, AddQuestionInput{
		QuestionText:  "What is the capital of France?",
		Options:       []string{"Paris", "Lyon"},
		CorrectAnswer: "Paris",
		Explanation:   "Basic geography",
	}); err != nil {
		t.Fatalf("add question: %v", err)
	}

	taker, err := service.GetQuiz(quiz.ID, 42, models.RoleUser)
	if err != nil {
		t.Fatalf("get quiz as taker: %v", err)
	}
	if taker.Questions[0].CorrectAnswer != "" {
		t.Fatalf("correct answer leaked to taker")
	}
	if len(taker.Questions[0].Options) != 2 {
		t.Fatalf("expected decoded options, got %v", taker.Questions[0].Options)
	}

	owner, err := service.GetQuiz(quiz.ID, 1, models.RoleUser)
	if err != nil {
		t.Fatalf("get quiz as owner: %v", err)
	}
	if owner.Questions[0].CorrectAnswer != "Paris" {
		t.Fatalf("expected correct answer for owner, got %q", owner.Questions[0].CorrectAnswer)
	}
}

func TestDeleteQuizRemovesQuestions(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	quiz, err := service.CreateQuiz(1, CreateQuizInput{Title: "Doomed quiz"})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if _, err := service.AddQuestion(quiz.ID, 1, models.RoleUser, AddQuestionInput{
		QuestionText:  "A question long enough?",
		CorrectAnswer: "A",
	}); err != nil {
		t.Fatalf("add question: %v", err)
	}

	if err := service.DeleteQuiz(quiz.ID, 1, models.RoleUser); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}

	var count int64
	db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected questions removed with quiz, got %d", count)
	}

	if _, err := service.GetQuiz(quiz.ID, 1, models.RoleUser); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
