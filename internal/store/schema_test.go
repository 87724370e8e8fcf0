package store

import (
	"slices"
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"

	entschema "github.com/abhisek/quizrogue/ent/schema"
)

// entColumns lists the columns an ent schema declares, id first.
func entColumns(def ent.Interface) []string {
	cols := []string{"id"}
	for _, m := range def.Mixin() {
		for _, f := range m.Fields() {
			cols = append(cols, f.Descriptor().Name)
		}
	}
	for _, f := range def.Fields() {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}

func TestTablesMatchEntSchema(t *testing.T) {
	tests := []struct {
		table *schema.Table
		def   ent.Interface
	}{
		{DocumentsTable, entschema.Document{}},
		{QuestionsTable, entschema.Question{}},
		{GameSavesTable, entschema.GameSave{}},
		{PlaySessionsTable, entschema.PlaySession{}},
		{AnswerHistoryTable, entschema.AnswerHistory{}},
		{LlmRequestEventsTable, entschema.LLMRequestEvent{}},
	}
	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			var got []string
			for _, c := range tt.table.Columns {
				got = append(got, c.Name)
			}
			want := entColumns(tt.def)
			slices.Sort(got)
			slices.Sort(want)
			if !slices.Equal(got, want) {
				t.Errorf("columns drifted from ent schema\n got: %v\nwant: %v", got, want)
			}
		})
	}
	if len(tests) != len(Tables) {
		t.Errorf("%d tables migrated, %d checked", len(Tables), len(tests))
	}
}
