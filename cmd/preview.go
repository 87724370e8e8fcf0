package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizrogue/internal/document"
	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/llm"
	"github.com/abhisek/quizrogue/internal/questiongen"
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Preview LLM-generated questions for a file (no database)",
	Long: `Generate and interactively answer questions from one chunk of a file.

This is a stateless developer tool: no database, no saves, no events.
Useful for evaluating question quality and prompt changes.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	previewCmd.Flags().Int("chunk", 1, "Which chunk of the file to use (1-based)")
	previewCmd.Flags().String("difficulty", questiongen.DifficultyMixed, "Difficulty: easy, medium, hard or mixed")
}

func runPreview(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	chunkNum, _ := cmd.Flags().GetInt("chunk")
	difficulty, _ := cmd.Flags().GetString("difficulty")

	switch difficulty {
	case questiongen.DifficultyEasy, questiongen.DifficultyMedium, questiongen.DifficultyHard, questiongen.DifficultyMixed:
	default:
		return fmt.Errorf("invalid difficulty %q", difficulty)
	}

	text, err := document.Read(args[0])
	if err != nil {
		return err
	}
	chunks := document.Split(text, document.DefaultChunkSize)
	if chunkNum < 1 || chunkNum > len(chunks) {
		return fmt.Errorf("chunk %d out of range (file has %d)", chunkNum, len(chunks))
	}
	chunk := chunks[chunkNum-1]

	ctx := cmd.Context()
	cfg, err := llm.Load()
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	logger := cliLogger()
	// No event repo: nothing is recorded.
	provider, err := llm.NewProvider(ctx, cfg, nil, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig(), logger)

	fmt.Printf("Chunk %d/%d (%d chars), %s\n", chunkNum, len(chunks), chunk.Chars, difficulty)
	fmt.Printf("Generating %d questions with %s...\n\n", count, provider.ModelID())

	qs, err := gen.Generate(ctx, questiongen.Input{
		Text:       chunk.Text,
		Count:      count,
		Difficulty: difficulty,
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct, asked int
	for i, q := range qs {
		fmt.Printf("── Question %d/%d [%s, %s] ──\n", i+1, len(qs), q.Difficulty, q.Topic)
		fmt.Println(q.Text)
		for j, o := range q.Options {
			fmt.Printf("  %c) %s\n", 'a'+j, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := resolveChoice(strings.TrimSpace(scanner.Text()), q.Options)
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}
		asked++

		if game.IsCorrect(answer, q.CorrectAnswer) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}
		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, asked)
	return nil
}

// resolveChoice maps a single option letter to its option text.
func resolveChoice(input string, options []string) string {
	if len(input) == 1 {
		if i := int(strings.ToLower(input)[0] - 'a'); i >= 0 && i < len(options) {
			return options[i]
		}
	}
	return input
}
