package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type reviewRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *reviewRepo) Save(ctx context.Context, rv Review) error {
	if rv.QuestionID == "" {
		return fmt.Errorf("review has no question id")
	}
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableReviews).
		Set("sequence", seqNum).
		Set("question_id", rv.QuestionID).
		Set("created_at", rv.CreatedAt.UTC()).
		Set("selected", rv.Selected).
		Set("correct", rv.Correct).
		Set("verdict", string(rv.Verdict)).
		Set("note", rv.Note).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save review of %s: %w", rv.QuestionID, err)
	}
	return nil
}

func (r *reviewRepo) ForQuestion(ctx context.Context, questionID string) ([]Review, error) {
	b := builder()
	query, args := b.Select("id", "question_id", "created_at", "selected", "correct", "verdict", "note").
		From(b.Table(tableReviews)).
		Where(entsql.EQ("question_id", questionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		var rv Review
		var verdict string
		if err := rows.Scan(&rv.ID, &rv.QuestionID, &rv.CreatedAt, &rv.Selected, &rv.Correct, &verdict, &rv.Note); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rv.Verdict = Verdict(verdict)
		out = append(out, rv)
	}
	return out, rows.Err()
}
