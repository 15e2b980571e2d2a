package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// QuestionReview records one reviewer's answer and verdict.
type QuestionReview struct {
	ent.Schema
}

func (QuestionReview) Mixin() []ent.Mixin {
	return []ent.Mixin{RecordMixin{}}
}

func (QuestionReview) Fields() []ent.Field {
	return []ent.Field{
		field.String("question_id"),
		field.String("selected").
			Comment("Option label the reviewer picked"),
		field.Bool("correct"),
		field.String("verdict").
			Default("").
			Comment("accept, reject, flag or empty"),
		field.String("note").
			Default(""),
	}
}

func (QuestionReview) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("question", Question.Type).
			Ref("reviews").
			Field("question_id").
			Unique().
			Required(),
	}
}
