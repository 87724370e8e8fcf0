package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizrogue/internal/game"
)

// QuestionRepo stores generated questions. It implements game.QuestionStore.
type QuestionRepo struct {
	db *sql.DB
}

var _ game.QuestionStore = (*QuestionRepo)(nil)

var questionColumns = []string{
	"id", "document_id", "question_text", "question_type", "options", "correct_answer",
	"explanation", "difficulty", "topic", "times_asked", "times_correct",
}

// Insert adds questions to a document in one transaction and returns the
// new ids in order.
func (r *QuestionRepo) Insert(ctx context.Context, documentID int64, qs []game.Question) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	ids := make([]int64, 0, len(qs))
	for _, q := range qs {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return nil, fmt.Errorf("marshal options: %w", err)
		}
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}
		query, args := sqlite().Insert(questionsTable).
			Columns("document_id", "question_text", "question_type", "options", "correct_answer",
				"explanation", "difficulty", "topic", "created_at").
			Values(documentID, q.Text, q.Type, string(opts), q.CorrectAnswer,
				q.Explanation, difficulty, q.Topic, now).
			Query()
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("insert question: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return ids, nil
}

func (r *QuestionRepo) GetQuestion(ctx context.Context, id int64) (*game.Question, error) {
	query, args := sqlite().Select(questionColumns...).
		From(sqlite().Table(questionsTable)).
		Where(entsql.EQ("id", id)).
		Query()
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

func (r *QuestionRepo) RandomQuestion(ctx context.Context, documentID int64, difficulty string, excludeRecent int) (*game.Question, error) {
	sel := sqlite().Select(questionColumns...).
		From(sqlite().Table(questionsTable)).
		Where(entsql.EQ("document_id", documentID))
	if difficulty != "" {
		sel.Where(entsql.EQ("difficulty", difficulty))
	}
	if excludeRecent > 0 {
		recent := sqlite().Select("question_id").
			From(sqlite().Table(answersTable)).
			Where(entsql.EQ("document_id", documentID)).
			OrderBy(entsql.Desc("id")).
			Limit(excludeRecent)
		sel.Where(entsql.NotIn("id", recent))
	}
	query, args := sel.OrderBy("RANDOM()").Limit(1).Query()

	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

func (r *QuestionRepo) UpdateQuestionStats(ctx context.Context, id int64, correct bool) error {
	upd := sqlite().Update(questionsTable).
		Add("times_asked", 1).
		Set("last_asked", time.Now().Unix()).
		Where(entsql.EQ("id", id))
	if correct {
		upd.Add("times_correct", 1)
	}
	query, args := upd.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update question stats: %w", err)
	}
	return nil
}

func (r *QuestionRepo) QuestionCount(ctx context.Context, documentID int64) (int, error) {
	query, args := sqlite().Select().Count().
		From(sqlite().Table(questionsTable)).
		Where(entsql.EQ("document_id", documentID)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// List returns every question of a document in insertion order.
func (r *QuestionRepo) List(ctx context.Context, documentID int64) ([]game.Question, error) {
	query, args := sqlite().Select(questionColumns...).
		From(sqlite().Table(questionsTable)).
		Where(entsql.EQ("document_id", documentID)).
		OrderBy("id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var qs []game.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		qs = append(qs, *q)
	}
	return qs, rows.Err()
}

// Texts returns the question texts of a document, for deduplicating new
// generations.
func (r *QuestionRepo) Texts(ctx context.Context, documentID int64) ([]string, error) {
	qs, err := r.List(ctx, documentID)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(qs))
	for i, q := range qs {
		texts[i] = q.Text
	}
	return texts, nil
}

func scanQuestion(row scanner) (*game.Question, error) {
	var (
		q    game.Question
		opts string
	)
	err := row.Scan(&q.ID, &q.DocumentID, &q.Text, &q.Type, &opts, &q.CorrectAnswer,
		&q.Explanation, &q.Difficulty, &q.Topic, &q.TimesAsked, &q.TimesCorrect)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan question: %w", err)
	}
	if opts != "" {
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, fmt.Errorf("question %d options: %w", q.ID, err)
		}
	}
	return &q, nil
}
