package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// PlaySession aggregates one run for statistics.
type PlaySession struct {
	ent.Schema
}

func (PlaySession) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("started_at").
			Immutable(),
		field.Int("questions_answered").
			Default(0),
		field.Int("questions_correct").
			Default(0),
		field.Int("total_score").
			Default(0),
		field.Int("time_played_seconds").
			Default(0),
		field.Int("highest_encounter").
			Default(0),
		field.Int("enemies_defeated").
			Default(0),
		field.Bool("game_completed").
			Default(false),
		field.Int64("document_id"),
	}
}

func (PlaySession) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("sessions").
			Field("document_id").
			Unique().
			Required(),
	}
}
