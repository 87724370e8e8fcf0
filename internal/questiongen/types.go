package questiongen

import "github.com/abhisek/quizrogue/internal/game"

// Question types accepted from the model.
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
)

// Difficulty labels. DifficultyMixed is only a request, never stored.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed"
)

// DefaultTopic is stored when the model leaves the topic empty.
const DefaultTopic = "General"

// Input holds everything needed to generate questions for one chunk.
type Input struct {
	// Text is the source passage. Only the first MaxSourceChars are sent.
	Text string

	// Count is how many questions to ask for.
	Count int

	// Difficulty is easy, medium, hard or mixed.
	Difficulty string

	// Topic optionally narrows the questions to one subject.
	Topic string

	// PriorQuestions are texts already stored for the document.
	PriorQuestions []string
}

// questionOutput is one raw question as the model returns it.
type questionOutput struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
	Explanation   string   `json:"explanation"`
	Topic         string   `json:"topic"`
	Difficulty    string   `json:"difficulty"`
}

// batchOutput wraps the list because structured output requires an object
// at the root.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

func (o questionOutput) toQuestion() *game.Question {
	return &game.Question{
		Text:          o.QuestionText,
		Type:          o.QuestionType,
		Options:       o.Options,
		CorrectAnswer: o.CorrectAnswer,
		Explanation:   o.Explanation,
		Difficulty:    o.Difficulty,
		Topic:         o.Topic,
	}
}
