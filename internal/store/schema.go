package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	tableLLMEvents = "llm_request_events"
	tableQuestions = "questions"
	tableReviews   = "question_reviews"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		timestamp DATETIME NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		sequence INTEGER NOT NULL UNIQUE,
		batch_id TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL,
		chapter INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		concepts TEXT NOT NULL,
		quality REAL NOT NULL,
		body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS questions_batch ON questions (batch_id)`,
	`CREATE TABLE IF NOT EXISTS question_reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL UNIQUE,
		question_id TEXT NOT NULL REFERENCES questions (id) ON DELETE CASCADE,
		created_at DATETIME NOT NULL,
		selected TEXT NOT NULL,
		correct BOOLEAN NOT NULL,
		verdict TEXT NOT NULL DEFAULT '',
		note TEXT NOT NULL DEFAULT ''
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %.40q: %w", stmt, err)
		}
	}
	return nil
}
