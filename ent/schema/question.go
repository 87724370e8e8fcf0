package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Question is one generated comprehension question.
type Question struct {
	ent.Schema
}

func (Question) Fields() []ent.Field {
	return []ent.Field{
		field.Text("question_text"),
		field.Enum("question_type").
			Values("multiple_choice", "true_false"),
		field.String("correct_answer"),
		field.String("options").
			Default("[]").
			Comment("JSON array of answer options"),
		field.String("explanation").
			Default(""),
		field.String("topic").
			Default(""),
		field.Enum("difficulty").
			Values("easy", "medium", "hard").
			Default("medium"),
		field.Int("times_asked").
			Default(0),
		field.Int("times_correct").
			Default(0),
		field.Int64("last_asked").
			Optional().
			Nillable(),
		field.Int64("created_at").
			Immutable(),
		field.Int64("document_id"),
	}
}

func (Question) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("questions").
			Field("document_id").
			Unique().
			Required(),
		edge.To("answers", AnswerHistory.Type),
	}
}

func (Question) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("document_id", "difficulty"),
	}
}
