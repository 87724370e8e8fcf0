package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// GameSave is a snapshot of a run. Deleting a save clears is_active.
type GameSave struct {
	ent.Schema
}

func (GameSave) Fields() []ent.Field {
	return []ent.Field{
		field.String("save_name"),
		field.Int("player_hp"),
		field.Int("player_max_hp"),
		field.Int("player_level"),
		field.Int("current_encounter"),
		field.Int("score").
			Default(0),
		field.String("active_powerups").
			Default("{}"),
		field.String("current_enemy").
			Default("").
			Comment("JSON enemy, empty when none"),
		field.String("game_state").
			Default("{}").
			Comment("JSON auxiliary state: inventory, review queue, boosts"),
		field.Int64("created_at").
			Immutable(),
		field.Int64("updated_at"),
		field.Bool("is_active").
			Default(true),
		field.Int64("document_id"),
	}
}

func (GameSave) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("document", Document.Type).
			Ref("saves").
			Field("document_id").
			Unique().
			Required(),
	}
}
