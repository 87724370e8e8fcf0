package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	documentsTable   = "documents"
	questionsTable   = "questions"
	savesTable       = "game_saves"
	sessionsTable    = "play_sessions"
	answersTable     = "answer_history"
	llmRequestsTable = "llm_request_events"
)

var (
	// DocumentsColumns holds the columns for the "documents" table.
	DocumentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "filename", Type: field.TypeString},
		{Name: "path", Type: field.TypeString, Unique: true},
		{Name: "title", Type: field.TypeString, Default: ""},
		{Name: "total_chars", Type: field.TypeInt, Default: 0},
		{Name: "processed", Type: field.TypeBool, Default: false},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "processed_at", Type: field.TypeInt64, Nullable: true},
	}
	// DocumentsTable holds the schema information for the "documents" table.
	DocumentsTable = &schema.Table{
		Name:       documentsTable,
		Columns:    DocumentsColumns,
		PrimaryKey: []*schema.Column{DocumentsColumns[0]},
	}

	// QuestionsColumns holds the columns for the "questions" table.
	QuestionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "question_text", Type: field.TypeString, Size: 2147483647},
		{Name: "question_type", Type: field.TypeString},
		{Name: "correct_answer", Type: field.TypeString},
		{Name: "options", Type: field.TypeString, Default: "[]"},
		{Name: "explanation", Type: field.TypeString, Default: ""},
		{Name: "topic", Type: field.TypeString, Default: ""},
		{Name: "difficulty", Type: field.TypeString, Default: "medium"},
		{Name: "times_asked", Type: field.TypeInt, Default: 0},
		{Name: "times_correct", Type: field.TypeInt, Default: 0},
		{Name: "last_asked", Type: field.TypeInt64, Nullable: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "document_id", Type: field.TypeInt64},
	}
	// QuestionsTable holds the schema information for the "questions" table.
	QuestionsTable = &schema.Table{
		Name:       questionsTable,
		Columns:    QuestionsColumns,
		PrimaryKey: []*schema.Column{QuestionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "questions_documents_questions",
				Columns:    []*schema.Column{QuestionsColumns[12]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "question_document_id_difficulty",
				Unique:  false,
				Columns: []*schema.Column{QuestionsColumns[12], QuestionsColumns[7]},
			},
		},
	}

	// GameSavesColumns holds the columns for the "game_saves" table.
	GameSavesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "save_name", Type: field.TypeString},
		{Name: "player_hp", Type: field.TypeInt},
		{Name: "player_max_hp", Type: field.TypeInt},
		{Name: "player_level", Type: field.TypeInt},
		{Name: "current_encounter", Type: field.TypeInt},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "active_powerups", Type: field.TypeString, Default: "{}"},
		{Name: "current_enemy", Type: field.TypeString, Default: ""},
		{Name: "game_state", Type: field.TypeString, Default: "{}"},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "updated_at", Type: field.TypeInt64},
		{Name: "is_active", Type: field.TypeBool, Default: true},
		{Name: "document_id", Type: field.TypeInt64},
	}
	// GameSavesTable holds the schema information for the "game_saves" table.
	GameSavesTable = &schema.Table{
		Name:       savesTable,
		Columns:    GameSavesColumns,
		PrimaryKey: []*schema.Column{GameSavesColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "game_saves_documents_saves",
				Columns:    []*schema.Column{GameSavesColumns[13]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// PlaySessionsColumns holds the columns for the "play_sessions" table.
	PlaySessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "started_at", Type: field.TypeInt64},
		{Name: "questions_answered", Type: field.TypeInt, Default: 0},
		{Name: "questions_correct", Type: field.TypeInt, Default: 0},
		{Name: "total_score", Type: field.TypeInt, Default: 0},
		{Name: "time_played_seconds", Type: field.TypeInt, Default: 0},
		{Name: "highest_encounter", Type: field.TypeInt, Default: 0},
		{Name: "enemies_defeated", Type: field.TypeInt, Default: 0},
		{Name: "game_completed", Type: field.TypeBool, Default: false},
		{Name: "document_id", Type: field.TypeInt64},
	}
	// PlaySessionsTable holds the schema information for the "play_sessions" table.
	PlaySessionsTable = &schema.Table{
		Name:       sessionsTable,
		Columns:    PlaySessionsColumns,
		PrimaryKey: []*schema.Column{PlaySessionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "play_sessions_documents_sessions",
				Columns:    []*schema.Column{PlaySessionsColumns[9]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// AnswerHistoryColumns holds the columns for the "answer_history" table.
	AnswerHistoryColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "session_id", Type: field.TypeInt64, Nullable: true},
		{Name: "user_answer", Type: field.TypeString},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "answered_at", Type: field.TypeInt64},
		{Name: "document_id", Type: field.TypeInt64},
		{Name: "question_id", Type: field.TypeInt64},
	}
	// AnswerHistoryTable holds the schema information for the "answer_history" table.
	AnswerHistoryTable = &schema.Table{
		Name:       answersTable,
		Columns:    AnswerHistoryColumns,
		PrimaryKey: []*schema.Column{AnswerHistoryColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "answer_history_documents_answers",
				Columns:    []*schema.Column{AnswerHistoryColumns[5]},
				RefColumns: []*schema.Column{DocumentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "answer_history_questions_answers",
				Columns:    []*schema.Column{AnswerHistoryColumns[6]},
				RefColumns: []*schema.Column{QuestionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "answer_document_id",
				Unique:  false,
				Columns: []*schema.Column{AnswerHistoryColumns[5]},
			},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       llmRequestsTable,
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		DocumentsTable,
		QuestionsTable,
		GameSavesTable,
		PlaySessionsTable,
		AnswerHistoryTable,
		LlmRequestEventsTable,
	}
)

func init() {
	QuestionsTable.ForeignKeys[0].RefTable = DocumentsTable
	GameSavesTable.ForeignKeys[0].RefTable = DocumentsTable
	PlaySessionsTable.ForeignKeys[0].RefTable = DocumentsTable
	AnswerHistoryTable.ForeignKeys[0].RefTable = DocumentsTable
	AnswerHistoryTable.ForeignKeys[1].RefTable = QuestionsTable
}
