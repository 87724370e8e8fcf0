package questiongen

import "github.com/abhisek/quizrogue/internal/llm"

// QuestionSchema is the structured output shape for a batch of questions.
var QuestionSchema = &llm.Schema{
	Name:        "comprehension-questions",
	Description: "Study questions generated from a passage of text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": questionDefinition,
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

var questionDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"question_text": map[string]any{
			"type":        "string",
			"description": "The question shown to the player",
		},
		"question_type": map[string]any{
			"type": "string",
			"enum": []any{TypeMultipleChoice, TypeTrueFalse},
		},
		"correct_answer": map[string]any{
			"type":        "string",
			"description": "For multiple_choice, exactly one of the options. For true_false, \"true\" or \"false\".",
		},
		"options": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Four options for multiple_choice; [\"true\", \"false\"] for true_false",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the answer is correct and why the others are wrong",
		},
		"topic": map[string]any{
			"type":        "string",
			"description": "Topic or subject area of the question",
		},
		"difficulty": map[string]any{
			"type": "string",
			"enum": []any{DifficultyEasy, DifficultyMedium, DifficultyHard},
		},
	},
	"required":             []any{"question_text", "question_type", "correct_answer", "options", "explanation", "topic", "difficulty"},
	"additionalProperties": false,
}
