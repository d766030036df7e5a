package models

import (
	"encoding/json"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusBanned   = "banned"

	// Quiz status is stored lowercase; all read paths compare against
	// these values.
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"default:user"`
	Status    string    `json:"status" gorm:"default:active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Quiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CategoryID  *uint     `json:"category_id"`
	CreatedBy   uint      `json:"created_by"`
	Status      string    `json:"status" gorm:"default:draft"`
	TimeLimit   int       `json:"time_limit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Question struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	QuizID        uint      `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string    `json:"question_text" gorm:"not null"`
	QuestionType  string    `json:"question_type" gorm:"default:multiple_choice"`
	Options       string    `json:"-"`
	CorrectAnswer string    `json:"correct_answer" gorm:"not null"`
	Explanation   string    `json:"explanation"`
	Points        int       `json:"points" gorm:"default:1"`
	CreatedAt     time.Time `json:"created_at"`
}

// OptionList decodes the serialized option strings. A missing or malformed
// payload yields an empty list rather than an error; options are advisory
// for rendering and never used for grading.
func (q *Question) OptionList() []string {
	if q.Options == "" {
		return nil
	}
	var opts []string
	if err := json.Unmarshal([]byte(q.Options), &opts); err != nil {
		return nil
	}
	return opts
}

func (q *Question) SetOptions(opts []string) error {
	if opts == nil {
		q.Options = ""
		return nil
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = string(raw)
	return nil
}

// QuizAttempt is an append-only ledger row: once written it is never
// updated or deleted.
type QuizAttempt struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	QuizID         uint      `json:"quiz_id" gorm:"index;not null"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at" gorm:"autoCreateTime"`
}

// UserAnswer records one graded submission entry, created in the same
// transaction as its parent attempt.
type UserAnswer struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	AttemptID    uint   `json:"attempt_id" gorm:"index;not null"`
	QuestionID   uint   `json:"question_id" gorm:"not null"`
	Answer       string `json:"user_answer" gorm:"column:user_answer"`
	IsCorrect    bool   `json:"is_correct"`
	PointsEarned int    `json:"points_earned"`
}

// QuizHistoryEntry marks that a user selected a quiz. Append-only,
// analytics only.
type QuizHistoryEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	QuizID    uint      `json:"quiz_id" gorm:"not null"`
	StartedAt time.Time `json:"started_at" gorm:"autoCreateTime"`
}

func (QuizHistoryEntry) TableName() string {
	return "user_quiz_history"
}
