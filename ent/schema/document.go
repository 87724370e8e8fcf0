package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Document is a registered study text that questions are generated from.
type Document struct {
	ent.Schema
}

func (Document) Fields() []ent.Field {
	return []ent.Field{
		field.String("filename"),
		field.String("path").
			Unique().
			Comment("Absolute path; registering the same file twice reuses the row"),
		field.String("title").
			Default(""),
		field.Int("total_chars").
			Default(0),
		field.Bool("processed").
			Default(false).
			Comment("Set once question generation has run"),
		field.Int64("created_at").
			Immutable(),
		field.Int64("processed_at").
			Optional().
			Nillable(),
	}
}

func (Document) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("questions", Question.Type),
		edge.To("saves", GameSave.Type),
		edge.To("sessions", PlaySession.Type),
		edge.To("answers", AnswerHistory.Type),
	}
}
