package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are an expert educational content creator writing study questions for a quiz game.

Rules:
- Base every question on the source text only.
- Mix question types: multiple_choice (exactly 4 options, one correct) and true_false.
- For multiple_choice, correct_answer must match one option exactly. Distractors should be plausible and reflect common misconceptions. Never use "all of the above" or "none of the above".
- For true_false, correct_answer is "true" or "false" in lowercase and options are ["true", "false"].
- Explain why the answer is correct and why the others are wrong.
- Rate each question easy, medium or hard and name its topic.
- Test understanding, not trivia. Avoid questions with obvious answers.
- Do not repeat any question from the "already asked" list.`

var difficultyGuidance = map[string]string{
	DifficultyEasy:   "Focus on basic recall and simple comprehension. Questions should test fundamental understanding.",
	DifficultyMedium: "Mix of recall and application. Questions should require understanding and some analysis.",
	DifficultyHard:   "Focus on analysis, synthesis and critical thinking. Questions should be challenging.",
	DifficultyMixed:  "Create a balanced mix: 40% easy, 40% medium, 20% hard questions.",
}

// buildUserMessage constructs the user message from Input and Config limits.
func buildUserMessage(input Input, cfg Config) string {
	difficulty := input.Difficulty
	guidance, ok := difficultyGuidance[difficulty]
	if !ok {
		difficulty = DifficultyMixed
		guidance = difficultyGuidance[DifficultyMixed]
	}

	text := input.Text
	if cfg.MaxSourceChars > 0 && len(text) > cfg.MaxSourceChars {
		text = text[:cfg.MaxSourceChars]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d questions.\n", max(input.Count, 1))
	fmt.Fprintf(&b, "Difficulty: %s\n%s\n", difficulty, guidance)
	if input.Topic != "" {
		fmt.Fprintf(&b, "Focus specifically on the topic: %s\n", input.Topic)
	}

	b.WriteString("\nSource text:\n")
	b.WriteString(text)

	b.WriteString("\n\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))
	return b.String()
}
