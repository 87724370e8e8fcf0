package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizrogue/internal/config"
	"github.com/abhisek/quizrogue/internal/document"
	"github.com/abhisek/quizrogue/internal/game"
	"github.com/abhisek/quizrogue/internal/llm"
	"github.com/abhisek/quizrogue/internal/questiongen"
	"github.com/abhisek/quizrogue/internal/store"
)

var generateCmd = &cobra.Command{
	Use:   "generate <document-id | file>",
	Short: "Generate quiz questions for a document with the configured LLM",
	Long: `Generate questions for a registered document, or register a file and
generate for it in one step.

The default count is enough for a full run, more for long texts. Use
--dry-run to see the estimated token use and cost without calling the LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Int("count", 0, "Number of questions to generate (default: based on document length)")
	generateCmd.Flags().Bool("dry-run", false, "Print the cost estimate and exit")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	docID, title, text, err := loadSource(cmd, st, args[0])
	if err != nil {
		return err
	}
	chunks := document.Split(text, document.DefaultChunkSize)
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	engine := game.NewEngine(cfg.GameBalance(), st.Questions(), st.Saves(), st.Stats())
	count, _ := cmd.Flags().GetInt("count")
	if count <= 0 {
		count = questiongen.TargetCount(text, engine.MinimumQuestionsNeeded(), engine.Config().MinQuestionsToStart)
	}

	llmCfg, llmErr := llm.Load()
	fmt.Printf("Document %d: %s (%d chunks)\n", docID, title, len(chunks))

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		printEstimate(questiongen.EstimateCost(len(text), count, modelName(llmCfg)), count)
		return nil
	}
	if llmErr != nil {
		return fmt.Errorf("LLM provider not configured: %w", llmErr)
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())
	provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger)
	if err != nil {
		return err
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig(), logger)

	fmt.Printf("Generating %d questions with %s...\n", count, provider.ModelID())
	res, err := questiongen.NewBatch(gen, st.Questions(), logger).Run(ctx, docID, texts, count)
	if err != nil {
		return err
	}
	if err := st.Documents().MarkProcessed(ctx, docID); err != nil {
		return err
	}

	total, err := st.Questions().QuestionCount(ctx, docID)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d new questions (%d chunks failed). The document now has %d.\n",
		len(res.Saved), res.ChunksFailed, total)
	if err := engine.ValidateReady(ctx, docID); err != nil {
		fmt.Println(err)
	} else {
		fmt.Printf("Ready to play: quizrogue play %d\n", docID)
	}
	return nil
}

// loadSource resolves a document ID or registers a file path, returning the
// document text.
func loadSource(cmd *cobra.Command, st *store.Store, arg string) (int64, string, string, error) {
	ctx := cmd.Context()
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		d, err := st.Documents().Get(ctx, id)
		if err != nil {
			return 0, "", "", err
		}
		if d == nil {
			return 0, "", "", fmt.Errorf("document %d not found", id)
		}
		text, err := document.Read(d.Path)
		if err != nil {
			return 0, "", "", err
		}
		return d.ID, d.Title, text, nil
	}

	l, err := document.Register(ctx, st.Documents(), arg)
	if err != nil {
		return 0, "", "", err
	}
	return l.ID, l.Title, l.Text, nil
}

func modelName(cfg llm.Config) string {
	switch cfg.Provider {
	case llm.ProviderOpenAI:
		return cfg.OpenAI.Model
	case llm.ProviderGemini:
		return cfg.Gemini.Model
	case llm.ProviderOpenRouter:
		return cfg.OpenRouter.Model
	default:
		return cfg.Anthropic.Model
	}
}

func printEstimate(est questiongen.CostEstimate, count int) {
	fmt.Printf("Questions:      %d\n", count)
	fmt.Printf("Input tokens:   ~%d\n", est.InputTokens)
	fmt.Printf("Output tokens:  ~%d\n", est.OutputTokens)
	fmt.Printf("Estimated cost: %s\n", formatCost(est.TotalCost))
	if !est.KnownPricing {
		fmt.Println("(model pricing unknown, fallback rates used)")
	}
}
