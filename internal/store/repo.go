package store

import (
	"context"
	"time"

	"github.com/abhisek/sourcequiz/internal/quiz"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
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

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates calls per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int64
	InputTokens  int64
	OutputTokens int64
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage per model.
type LLMModelUsage struct {
	Model        string
	Calls        int64
	InputTokens  int64
	OutputTokens int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event by ID, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// QuestionFilter narrows question listings. Zero values match everything.
type QuestionFilter struct {
	Chapter    int
	Difficulty string
	Concept    string
	BatchID    string
	Limit      int
}

// QuestionRepo archives accepted questions.
type QuestionRepo interface {
	// Save inserts or replaces a question keyed by its ID.
	Save(ctx context.Context, q *quiz.Question) error

	// Get returns the question with the given ID, or nil if it doesn't exist.
	Get(ctx context.Context, id string) (*quiz.Question, error)

	// List returns questions newest first.
	List(ctx context.Context, f QuestionFilter) ([]*quiz.Question, error)

	CountByDifficulty(ctx context.Context) (map[string]int, error)
}

// Verdict is a reviewer's judgement of a question.
type Verdict string

const (
	VerdictNone    Verdict = ""
	VerdictAccept  Verdict = "accept"
	VerdictReject  Verdict = "reject"
	VerdictFlagged Verdict = "flag"
)

// Review is one reviewer pass over a question.
type Review struct {
	ID         int
	QuestionID string
	Selected   string
	Correct    bool
	Verdict    Verdict
	Note       string
	CreatedAt  time.Time
}

// ReviewRepo stores reviewer answers and notes.
type ReviewRepo interface {
	Save(ctx context.Context, r Review) error

	// ForQuestion returns reviews of a question, oldest first.
	ForQuestion(ctx context.Context, questionID string) ([]Review, error)
}
