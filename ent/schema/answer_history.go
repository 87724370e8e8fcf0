package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerHistory records every submitted answer.
type AnswerHistory struct {
	ent.Schema
}

func (AnswerHistory) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("session_id").
			Optional().
			Nillable(),
		field.String("user_answer"),
		field.Bool("is_correct"),
		field.Int64("answered_at").
			Immutable(),
		field.Int64("document_id"),
		field.Int64("question_id"),
	}
}

func (AnswerHistory) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("answers").
			Field("document_id").
			Unique().
			Required(),
		edge.From("question", Question.Type).
			Ref("answers").
			Field("question_id").
			Unique().
			Required(),
	}
}

func (AnswerHistory) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id"),
	}
}
