package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/sourcequiz/internal/quiz"
)

// questionRepo stores each question as a JSON body alongside the columns
// listings filter on.
type questionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *questionRepo) Save(ctx context.Context, q *quiz.Question) error {
	if q.ID == "" {
		q.ID = quiz.NewID()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	concepts, err := json.Marshal(q.Concepts)
	if err != nil {
		return fmt.Errorf("marshal concepts: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableQuestions).
		Set("id", q.ID).
		Set("sequence", seqNum).
		Set("batch_id", q.BatchID).
		Set("created_at", q.CreatedAt.UTC()).
		Set("chapter", q.Chapter).
		Set("difficulty", string(q.Difficulty)).
		Set("concepts", string(concepts)).
		Set("quality", q.Quality.Total).
		Set("body", string(body)).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save question %s: %w", q.ID, err)
	}
	return nil
}

func (r *questionRepo) Get(ctx context.Context, id string) (*quiz.Question, error) {
	b := builder()
	query, args := b.Select("body").
		From(b.Table(tableQuestions)).
		Where(entsql.EQ("id", id)).
		Query()

	var body string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get question %s: %w", id, err)
	}
	return decodeQuestion(body)
}

func (r *questionRepo) List(ctx context.Context, f QuestionFilter) ([]*quiz.Question, error) {
	b := builder()
	sel := b.Select("body").From(b.Table(tableQuestions))

	var preds []*entsql.Predicate
	if f.Chapter > 0 {
		preds = append(preds, entsql.EQ("chapter", f.Chapter))
	}
	if f.Difficulty != "" {
		preds = append(preds, entsql.EQ("difficulty", f.Difficulty))
	}
	if f.BatchID != "" {
		preds = append(preds, entsql.EQ("batch_id", f.BatchID))
	}
	if f.Concept != "" {
		// concepts is a JSON array of strings.
		preds = append(preds, entsql.Contains("concepts", `"`+f.Concept+`"`))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var out []*quiz.Question
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q, err := decodeQuestion(body)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *questionRepo) CountByDifficulty(ctx context.Context) (map[string]int, error) {
	b := builder()
	query, args := b.Select("difficulty", entsql.As(entsql.Count("*"), "n")).
		From(b.Table(tableQuestions)).
		GroupBy("difficulty").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[level] = n
	}
	return counts, rows.Err()
}

func decodeQuestion(body string) (*quiz.Question, error) {
	var q quiz.Question
	if err := json.Unmarshal([]byte(body), &q); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return &q, nil
}
