package report

import (
	"testing"
	"time"

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

func createUser(t *testing.T, db *gorm.DB, name, email, role string) uint {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "x", Role: role, Status: models.StatusActive}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func createQuiz(t *testing.T, db *gorm.DB, title, status string, categoryID *uint) uint {
	t.Helper()
	quiz := models.Quiz{Title: title, Status: status, CreatedBy: 1, CategoryID: categoryID}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz.ID
}

func createAttempt(t *testing.T, db *gorm.DB, userID, quizID uint, score, total, timeTaken int, completedAt time.Time) {
	t.Helper()
	attempt := models.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		TimeTaken:      timeTaken,
		CompletedAt:    completedAt,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("create attempt: %v", err)
	}
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	now := time.Now()
	quizID := createQuiz(t, db, "Quiz", models.QuizStatusPublished, nil)

	// Equal total scores; accuracy breaks the tie.
	alice := createUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := createUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	createAttempt(t, db, alice, quizID, 45, 50, 60, now) // 90% accuracy
	createAttempt(t, db, bob, quizID, 45, 90, 60, now)   // 50% accuracy

	rows, err := service.Leaderboard()
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Name != "Alice" {
		t.Fatalf("expected Alice to rank first on accuracy tie-break, got %q", rows[0].Name)
	}
	if rows[0].TotalScore == nil || *rows[0].TotalScore != 45 {
		t.Fatalf("unexpected total score for Alice: %+v", rows[0].TotalScore)
	}
	if rows[0].AverageAccuracy == nil || *rows[0].AverageAccuracy != 90 {
		t.Fatalf("expected 90%% accuracy for Alice, got %+v", rows[0].AverageAccuracy)
	}
	if rows[0].LastAttempt == nil {
		t.Fatalf("expected last_attempt to be set")
	}
}

func TestLeaderboardExcludesAdminsAndZeroDenominators(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	now := time.Now()
	quizID := createQuiz(t, db, "Quiz", models.QuizStatusPublished, nil)

	admin := createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	player := createUser(t, db, "Player", "player@example.com", models.RoleUser)
	createAttempt(t, db, admin, quizID, 10, 10, 30, now)

	// The zero-question attempt must drop out of the accuracy average
	// instead of being treated as 0%.
	createAttempt(t, db, player, quizID, 5, 0, 30, now)
	createAttempt(t, db, player, quizID, 5, 10, 30, now)

	rows, err := service.Leaderboard()
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only role-user rows, got %d", len(rows))
	}
	if rows[0].Name != "Player" {
		t.Fatalf("expected Player, got %q", rows[0].Name)
	}
	if rows[0].AverageAccuracy == nil || *rows[0].AverageAccuracy != 50 {
		t.Fatalf("expected 50%% average accuracy, got %+v", rows[0].AverageAccuracy)
	}
	if rows[0].TotalAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", rows[0].TotalAttempts)
	}
}

func TestLeaderboardIncludesUsersWithoutAttempts(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	createUser(t, db, "Idle", "idle@example.com", models.RoleUser)

	rows, err := service.Leaderboard()
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TotalScore != nil || rows[0].AverageAccuracy != nil {
		t.Fatalf("expected null aggregates for a user without attempts, got %+v", rows[0])
	}
	if rows[0].TotalAttempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", rows[0].TotalAttempts)
	}
}

func TestUserQuizHistoryResultClassification(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	category := models.Category{Name: "Science", Description: ""}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	quizID := createQuiz(t, db, "Physics", models.QuizStatusPublished, &category.ID)
	userID := createUser(t, db, "Student", "student@example.com", models.RoleUser)

	base := time.Now().Add(-time.Hour)
	createAttempt(t, db, userID, quizID, 4, 5, 30, base)                      // 80% -> Pass
	createAttempt(t, db, userID, quizID, 7999, 10000, 30, base.Add(time.Minute)) // 79.99% -> Moderate
	createAttempt(t, db, userID, quizID, 1, 2, 30, base.Add(2*time.Minute))   // 50% -> Moderate
	createAttempt(t, db, userID, quizID, 4999, 10000, 30, base.Add(3*time.Minute)) // 49.99% -> Fail

	rows, err := service.UserQuizHistory(userID)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}

	// Newest first.
	expected := []string{"Fail", "Moderate", "Moderate", "Pass"}
	for i, want := range expected {
		if rows[i].Result != want {
			t.Fatalf("row %d: expected result %q, got %q", i, want, rows[i].Result)
		}
	}
	if rows[3].Category == nil || *rows[3].Category != "Science" {
		t.Fatalf("expected category Science, got %+v", rows[3].Category)
	}
	if rows[3].QuizTitle != "Physics" {
		t.Fatalf("expected quiz title, got %q", rows[3].QuizTitle)
	}
}

func TestQuizStatsPublishedOnly(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	now := time.Now()
	published := createQuiz(t, db, "Published", models.QuizStatusPublished, nil)
	draft := createQuiz(t, db, "Draft", models.QuizStatusDraft, nil)

	u1 := createUser(t, db, "U1", "u1@example.com", models.RoleUser)
	u2 := createUser(t, db, "U2", "u2@example.com", models.RoleUser)
	createAttempt(t, db, u1, published, 5, 10, 20, now)
	createAttempt(t, db, u1, published, 10, 10, 40, now)
	createAttempt(t, db, u2, published, 10, 10, 30, now)
	createAttempt(t, db, u1, draft, 1, 10, 30, now)

	rows, err := service.QuizStats()
	if err != nil {
		t.Fatalf("quiz stats failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only published quizzes, got %d rows", len(rows))
	}
	if rows[0].TotalParticipants != 2 {
		t.Fatalf("expected 2 distinct participants, got %d", rows[0].TotalParticipants)
	}
	if rows[0].TotalAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", rows[0].TotalAttempts)
	}
	if rows[0].AvgAccuracy == nil {
		t.Fatalf("expected avg accuracy to be set")
	}
}

func TestPlatformStats(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	now := time.Now()
	createUser(t, db, "Root", "root@example.com", models.RoleAdmin)
	player := createUser(t, db, "Player", "player@example.com", models.RoleUser)
	published := createQuiz(t, db, "Published", models.QuizStatusPublished, nil)
	createQuiz(t, db, "Draft", models.QuizStatusDraft, nil)

	createAttempt(t, db, player, published, 5, 10, 20, now)
	createAttempt(t, db, player, published, 10, 10, 40, now)

	stats, err := service.PlatformStats()
	if err != nil {
		t.Fatalf("platform stats failed: %v", err)
	}
	if stats.TotalUsers != 1 {
		t.Fatalf("expected 1 role-user account, got %d", stats.TotalUsers)
	}
	if stats.TotalQuizzes != 1 {
		t.Fatalf("expected 1 published quiz, got %d", stats.TotalQuizzes)
	}
	if stats.TotalAttempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", stats.TotalAttempts)
	}
	if stats.OverallAccuracy == nil || *stats.OverallAccuracy != 75 {
		t.Fatalf("expected 75%% overall accuracy, got %+v", stats.OverallAccuracy)
	}
	if stats.AvgTimePerAttempt == nil || *stats.AvgTimePerAttempt != 30 {
		t.Fatalf("expected 30s average time, got %+v", stats.AvgTimePerAttempt)
	}
}

func TestPlatformStatsEmpty(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db))

	stats, err := service.PlatformStats()
	if err != nil {
		t.Fatalf("platform stats failed: %v", err)
	}
	if stats.TotalAttempts != 0 {
		t.Fatalf("expected 0 attempts, got %d", stats.TotalAttempts)
	}
	if stats.OverallAccuracy != nil {
		t.Fatalf("expected null accuracy on empty ledger, got %v", *stats.OverallAccuracy)
	}
}
