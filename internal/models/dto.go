package models

import "time"

// QuestionDTO is the question payload served to quiz takers. The correct
// answer is only populated for the quiz owner or an admin.
type QuestionDTO struct {
	ID            uint     `json:"id"`
	QuizID        uint     `json:"quiz_id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Points        int      `json:"points"`
}

func (q Question) ToDTO(includeAnswer bool) QuestionDTO {
	dto := QuestionDTO{
		ID:           q.ID,
		QuizID:       q.QuizID,
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
		Options:      q.OptionList(),
		Points:       q.Points,
	}
	if includeAnswer {
		dto.CorrectAnswer = q.CorrectAnswer
		dto.Explanation = q.Explanation
	}
	return dto
}

// QuizSummary is a quiz row joined with its category and creator names.
// TotalQuestions is computed by a live subquery, never stored.
type QuizSummary struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	CategoryID     *uint     `json:"category_id"`
	Category       *string   `json:"category"`
	CreatedBy      uint      `json:"created_by"`
	CreatorName    *string   `json:"creator_name"`
	Status         string    `json:"status"`
	TimeLimit      int       `json:"time_limit"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type QuizDetail struct {
	QuizSummary
	Questions []QuestionDTO `json:"questions"`
}

type CategoryWithCount struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	QuizCount   int       `json:"quiz_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// SubmitResult is the scoring engine response. Percentage is derived from
// point totals and always in [0,100].
type SubmitResult struct {
	Message        string `json:"message"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
	Percentage     int    `json:"percentage"`
}

// LeaderboardRow aggregates one user's attempt ledger. Aggregate fields are
// pointers because users without attempts survive the left join as NULLs.
type LeaderboardRow struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	QuizzesAttempted int      `json:"quizzes_attempted"`
	TotalAttempts    int      `json:"total_attempts"`
	AverageAccuracy  *float64 `json:"average_accuracy"`
	TotalScore       *int     `json:"total_score"`
	AvgTimeTaken     *float64 `json:"avg_time_taken"`
	LastAttempt      *string  `json:"last_attempt"`
}

type QuizHistoryRow struct {
	AttemptID      uint      `json:"attempt_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Category       *string   `json:"category"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Accuracy       *float64  `json:"accuracy"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at"`
	Result         string    `json:"result"`
}

type QuizStatsRow struct {
	ID                uint     `json:"id"`
	Title             string   `json:"title"`
	Category          *string  `json:"category"`
	TotalParticipants int      `json:"total_participants"`
	AvgAccuracy       *float64 `json:"avg_accuracy"`
	AvgTimeTaken      *float64 `json:"avg_time_taken"`
	TotalAttempts     int      `json:"total_attempts"`
}

type PlatformStats struct {
	TotalUsers        int      `json:"total_users"`
	TotalQuizzes      int      `json:"total_quizzes"`
	TotalAttempts     int      `json:"total_attempts"`
	OverallAccuracy   *float64 `json:"overall_accuracy"`
	AvgTimePerAttempt *float64 `json:"avg_time_per_attempt"`
}

// AttemptWithQuiz is an attempt row joined with its quiz title, served on
// user-facing history endpoints.
type AttemptWithQuiz struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	QuizID         uint      `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	TimeTaken      int       `json:"time_taken"`
	CompletedAt    time.Time `json:"completed_at"`
}
