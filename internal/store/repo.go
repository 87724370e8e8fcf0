package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that require the row to exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Document is a registered source text.
type Document struct {
	ID          int64
	Filename    string
	Path        string
	Title       string
	TotalChars  int
	Processed   bool
	CreatedAt   time.Time
	ProcessedAt time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMRequest returns nil, nil when no event has the id.
	GetLLMRequest(ctx context.Context, id int64) (*LLMRequestEvent, error)
}

// OverallStats aggregates play history for one document.
type OverallStats struct {
	TotalQuestions int     `json:"total_questions"`
	TotalAnswers   int     `json:"total_answers"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
	GamesPlayed    int     `json:"games_played"`
	GamesCompleted int     `json:"games_completed"`
	BestScore      int     `json:"best_score"`
	TotalPlaySecs  int     `json:"total_time_played"`
}

// TopicStats is answer accuracy for one topic.
type TopicStats struct {
	Topic    string  `json:"topic"`
	Answers  int     `json:"total_answers"`
	Correct  int     `json:"correct_answers"`
	Accuracy float64 `json:"accuracy"`
}

// DailyActivity is the answer volume of one day.
type DailyActivity struct {
	Date     string  `json:"date"`
	Answers  int     `json:"answers"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}
