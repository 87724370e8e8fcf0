package questiongen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/quizrogue/internal/game"
)

// ErrNoChunks is returned when a batch is run without any text.
var ErrNoChunks = errors.New("no chunks to generate questions from")

// QuestionSink persists generated questions. store.QuestionRepo
// implements it.
type QuestionSink interface {
	Texts(ctx context.Context, documentID int64) ([]string, error)
	Insert(ctx context.Context, documentID int64, qs []game.Question) ([]int64, error)
}

// BatchResult summarises one batch run.
type BatchResult struct {
	Generated    int
	Saved        []int64
	ChunksFailed int
}

// Batch generates questions for every chunk of a document and stores them.
type Batch struct {
	gen    Generator
	sink   QuestionSink
	logger *slog.Logger
}

// NewBatch creates a Batch. A nil logger uses slog.Default.
func NewBatch(gen Generator, sink QuestionSink, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{gen: gen, sink: sink, logger: logger}
}

// ChunkDifficulty rotates easy, medium, medium, hard, mixed over 1-based
// chunk positions.
func ChunkDifficulty(i int) string {
	switch i % 5 {
	case 1:
		return DifficultyEasy
	case 2, 3:
		return DifficultyMedium
	case 4:
		return DifficultyHard
	default:
		return DifficultyMixed
	}
}

// Run splits total evenly over the chunks (at least one per chunk), stops
// once total is reached and saves everything in one transaction. A failing
// chunk is logged and skipped; Run fails only when every chunk failed.
func (b *Batch) Run(ctx context.Context, documentID int64, chunks []string, total int) (*BatchResult, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	perChunk := max(1, total/len(chunks))

	prior, err := b.sink.Texts(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load existing questions: %w", err)
	}

	res := &BatchResult{}
	var (
		all     []game.Question
		lastErr error
	)
	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		difficulty := ChunkDifficulty(i + 1)
		qs, err := b.gen.Generate(ctx, Input{
			Text:           chunk,
			Count:          perChunk,
			Difficulty:     difficulty,
			PriorQuestions: prior,
		})
		if err != nil {
			res.ChunksFailed++
			lastErr = err
			b.logger.Error("chunk generation failed", "chunk", i+1, "of", len(chunks), "error", err)
			continue
		}
		b.logger.Info("chunk generated", "chunk", i+1, "of", len(chunks), "difficulty", difficulty, "questions", len(qs))

		all = append(all, qs...)
		for _, q := range qs {
			prior = append(prior, q.Text)
		}
		if total > 0 && len(all) >= total {
			break
		}
	}

	if len(all) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all %d chunks failed: %w", res.ChunksFailed, lastErr)
	}
	res.Generated = len(all)
	if len(all) == 0 {
		return res, nil
	}

	ids, err := b.sink.Insert(ctx, documentID, all)
	if err != nil {
		return nil, fmt.Errorf("save questions: %w", err)
	}
	res.Saved = ids
	return res, nil
}
