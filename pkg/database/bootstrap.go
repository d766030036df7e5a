package database

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mcq-platform/internal/models"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Quiz{},
		&models.Question{},
		&models.QuizAttempt{},
		&models.UserAnswer{},
		&models.QuizHistoryEntry{},
	)
}

// Seed inserts the default admin account and starter categories. Safe to
// run on every startup; existing rows are left untouched.
func Seed(db *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    "admin@mcqplatform.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
		Status:   models.StatusActive,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Programming", Description: "Programming and coding related questions"},
		{Name: "Mathematics", Description: "Math problems and concepts"},
		{Name: "Science", Description: "General science questions"},
		{Name: "General Knowledge", Description: "General knowledge and trivia"},
	}
	for _, category := range categories {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category).Error; err != nil {
			return err
		}
	}

	log.Println("Database seeding completed")
	return nil
}
