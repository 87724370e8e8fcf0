package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// scriptedRand replays fixed draws. Exhausted IntN returns 0 and exhausted
// Float64 returns 0.99 so no powerup drops.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type memQuestions struct {
	byID   map[int64]*Question
	random []*Question // served by RandomQuestion with a difficulty
	any    []*Question // served by RandomQuestion without one

	stats   map[int64][2]int
	failErr error
}

func newMemQuestions() *memQuestions {
	return &memQuestions{byID: map[int64]*Question{}, stats: map[int64][2]int{}}
}

func (m *memQuestions) add(q *Question) { m.byID[q.ID] = q }

func (m *memQuestions) GetQuestion(_ context.Context, id int64) (*Question, error) {
	return m.byID[id], nil
}

func (m *memQuestions) RandomQuestion(_ context.Context, _ int64, difficulty string, _ int) (*Question, error) {
	src := &m.any
	if difficulty != "" {
		src = &m.random
	}
	if len(*src) == 0 {
		return nil, nil
	}
	q := (*src)[0]
	*src = (*src)[1:]
	return q, nil
}

func (m *memQuestions) UpdateQuestionStats(_ context.Context, id int64, correct bool) error {
	if m.failErr != nil {
		return m.failErr
	}
	s := m.stats[id]
	s[0]++
	if correct {
		s[1]++
	}
	m.stats[id] = s
	return nil
}

func (m *memQuestions) QuestionCount(_ context.Context, _ int64) (int, error) {
	return len(m.byID), nil
}

type memSaves struct {
	next  int64
	saves map[int64]SaveRecord
}

func newMemSaves() *memSaves { return &memSaves{saves: map[int64]SaveRecord{}} }

func (m *memSaves) CreateSave(_ context.Context, rec SaveRecord) (int64, error) {
	m.next++
	rec.ID = m.next
	m.saves[rec.ID] = rec
	return rec.ID, nil
}

func (m *memSaves) GetSave(_ context.Context, id int64) (*SaveRecord, error) {
	rec, ok := m.saves[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memSaves) DeleteSave(_ context.Context, id int64) error {
	delete(m.saves, id)
	return nil
}

func (m *memSaves) ListSaves(_ context.Context, documentID int64) ([]SaveRecord, error) {
	var out []SaveRecord
	for _, rec := range m.saves {
		if rec.DocumentID == documentID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memStats struct {
	next      int64
	updates   map[int64]SessionUpdate
	answers   []AnswerRecord
	updateErr error
}

func newMemStats() *memStats { return &memStats{updates: map[int64]SessionUpdate{}} }

func (m *memStats) CreateSession(_ context.Context, _ int64) (int64, error) {
	m.next++
	return m.next, nil
}

func (m *memStats) UpdateSession(_ context.Context, id int64, u SessionUpdate) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates[id] = u
	return nil
}

func (m *memStats) RecordAnswer(_ context.Context, rec AnswerRecord) error {
	m.answers = append(m.answers, rec)
	return nil
}

var errStoreDown = errors.New("store down")

var testEpoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	engine    *Engine
	questions *memQuestions
	saves     *memSaves
	stats     *memStats
	rng       *scriptedRand
	clock     *time.Time
}

func newFixture() *fixture {
	f := &fixture{
		questions: newMemQuestions(),
		saves:     newMemSaves(),
		stats:     newMemStats(),
		rng:       &scriptedRand{},
	}
	now := testEpoch
	f.clock = &now
	f.engine = NewEngine(DefaultConfig(), f.questions, f.saves, f.stats,
		WithRand(f.rng),
		WithClock(func() time.Time { return *f.clock }),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return f
}

// newGame starts a run whose first enemy is a slime.
func (f *fixture) newGame() *State {
	f.rng.ints = append(f.rng.ints, 0)
	s, err := f.engine.NewGame(context.Background(), 1)
	if err != nil {
		panic(err)
	}
	return s
}
