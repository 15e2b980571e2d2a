package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Question is an accepted, verified question. Only the columns used for
// filtering are broken out; the full question is stored as JSON in body.
type Question struct {
	ent.Schema
}

func (Question) Mixin() []ent.Mixin {
	return []ent.Mixin{RecordMixin{}}
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID assigned at generation"),
		field.String("batch_id").
			Default(""),
		field.Int("chapter").
			Range(1, 4),
		field.String("difficulty").
			Comment("easy, medium, hard or very_hard"),
		field.String("concepts").
			Comment("Comma-joined concept IDs, searched with LIKE"),
		field.Float("quality").
			Comment("Rubric total at acceptance"),
		field.Text("body"),
	}
}

func (Question) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("reviews", QuestionReview.Type),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("batch_id"),
	}
}
