package game

import (
	"context"
	"time"
)

// Question is a stored comprehension question.
type Question struct {
	ID            int64
	DocumentID    int64
	Text          string
	Type          string // multiple_choice or true_false
	Options       []string
	CorrectAnswer string
	Explanation   string
	Difficulty    string
	Topic         string
	TimesAsked    int
	TimesCorrect  int
}

// SafeQuestion is the question as shown to a player. It never carries the
// answer or explanation.
type SafeQuestion struct {
	ID         int64    `json:"id"`
	Text       string   `json:"question_text"`
	Type       string   `json:"question_type"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	Topic      string   `json:"topic"`
	IsReview   bool     `json:"is_review"`
}

// QuestionStore provides the question pool of a document.
type QuestionStore interface {
	// GetQuestion returns nil, nil when the question does not exist.
	GetQuestion(ctx context.Context, id int64) (*Question, error)

	// RandomQuestion picks a random question of the document. An empty
	// difficulty matches any difficulty; excludeRecent skips the most
	// recently answered questions. Returns nil, nil when nothing matches.
	RandomQuestion(ctx context.Context, documentID int64, difficulty string, excludeRecent int) (*Question, error)

	UpdateQuestionStats(ctx context.Context, id int64, correct bool) error
	QuestionCount(ctx context.Context, documentID int64) (int, error)
}

// SaveRecord is the persisted shape of a saved game.
type SaveRecord struct {
	ID               int64
	DocumentID       int64
	Name             string
	PlayerHP         int
	PlayerMaxHP      int
	PlayerLevel      int
	CurrentEncounter int
	Score            int
	ActivePowerups   string // JSON object
	CurrentEnemy     string // JSON object, empty when none
	GameState        string // JSON auxiliary state
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SaveStore persists saved games.
type SaveStore interface {
	CreateSave(ctx context.Context, rec SaveRecord) (int64, error)

	// GetSave returns nil, nil for missing or deleted saves.
	GetSave(ctx context.Context, id int64) (*SaveRecord, error)

	DeleteSave(ctx context.Context, id int64) error
	ListSaves(ctx context.Context, documentID int64) ([]SaveRecord, error)
}

// SessionUpdate is the aggregate written when a run ends.
type SessionUpdate struct {
	QuestionsAnswered int
	QuestionsCorrect  int
	TotalScore        int
	HighestEncounter  int
	EnemiesDefeated   int
	TimePlayedSeconds int
	GameCompleted     bool
}

// AnswerRecord is one submitted answer.
type AnswerRecord struct {
	QuestionID int64
	DocumentID int64
	SessionID  int64
	UserAnswer string
	IsCorrect  bool
}

// StatsStore records play sessions and answer history.
type StatsStore interface {
	CreateSession(ctx context.Context, documentID int64) (int64, error)
	UpdateSession(ctx context.Context, id int64, u SessionUpdate) error
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
}
