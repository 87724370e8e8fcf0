package store

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizrogue/internal/game"
)

// WeakAreaThreshold is the accuracy below which a topic counts as weak.
const WeakAreaThreshold = 60.0

// StatsRepo records play sessions and answers. It implements
// game.StatsStore and serves the statistics views.
type StatsRepo struct {
	db *sql.DB
}

var _ game.StatsStore = (*StatsRepo)(nil)

func (r *StatsRepo) CreateSession(ctx context.Context, documentID int64) (int64, error) {
	query, args := sqlite().Insert(sessionsTable).
		Columns("document_id", "started_at").
		Values(documentID, time.Now().Unix()).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

func (r *StatsRepo) UpdateSession(ctx context.Context, id int64, u game.SessionUpdate) error {
	query, args := sqlite().Update(sessionsTable).
		Set("questions_answered", u.QuestionsAnswered).
		Set("questions_correct", u.QuestionsCorrect).
		Set("total_score", u.TotalScore).
		Set("highest_encounter", u.HighestEncounter).
		Set("enemies_defeated", u.EnemiesDefeated).
		Set("time_played_seconds", u.TimePlayedSeconds).
		Set("game_completed", u.GameCompleted).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (r *StatsRepo) RecordAnswer(ctx context.Context, rec game.AnswerRecord) error {
	var session any
	if rec.SessionID > 0 {
		session = rec.SessionID
	}
	query, args := sqlite().Insert(answersTable).
		Columns("question_id", "document_id", "session_id", "user_answer", "is_correct", "answered_at").
		Values(rec.QuestionID, rec.DocumentID, session, rec.UserAnswer, rec.IsCorrect, time.Now().Unix()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	return nil
}

// Overall aggregates the play history of a document.
func (r *StatsRepo) Overall(ctx context.Context, documentID int64) (*OverallStats, error) {
	var st OverallStats

	query, args := sqlite().Select().Count().
		From(sqlite().Table(questionsTable)).
		Where(entsql.EQ("document_id", documentID)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.TotalQuestions); err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}

	query, args = sqlite().Select("COUNT(*)", "COALESCE(SUM(is_correct), 0)").
		From(sqlite().Table(answersTable)).
		Where(entsql.EQ("document_id", documentID)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.TotalAnswers, &st.CorrectAnswers); err != nil {
		return nil, fmt.Errorf("aggregate answers: %w", err)
	}

	query, args = sqlite().Select(
		"COUNT(*)",
		"COALESCE(SUM(game_completed), 0)",
		"COALESCE(MAX(total_score), 0)",
		"COALESCE(SUM(time_played_seconds), 0)",
	).
		From(sqlite().Table(sessionsTable)).
		Where(entsql.EQ("document_id", documentID)).
		Query()
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&st.GamesPlayed, &st.GamesCompleted, &st.BestScore, &st.TotalPlaySecs)
	if err != nil {
		return nil, fmt.Errorf("aggregate sessions: %w", err)
	}

	st.Accuracy = percentOf(st.CorrectAnswers, st.TotalAnswers)
	return &st, nil
}

// TopicPerformance reports answer accuracy per topic, weakest first.
func (r *StatsRepo) TopicPerformance(ctx context.Context, documentID int64) ([]TopicStats, error) {
	a := sqlite().Table(answersTable).As("a")
	q := sqlite().Table(questionsTable).As("q")
	sel := sqlite().Select(
		q.C("topic"),
		"COUNT(*)",
		"COALESCE(SUM("+a.C("is_correct")+"), 0)",
	).
		From(a).
		Join(q).On(a.C("question_id"), q.C("id")).
		Where(entsql.EQ(a.C("document_id"), documentID)).
		GroupBy(q.C("topic"))
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("topic performance: %w", err)
	}
	defer rows.Close()

	var out []TopicStats
	for rows.Next() {
		var ts TopicStats
		if err := rows.Scan(&ts.Topic, &ts.Answers, &ts.Correct); err != nil {
			return nil, fmt.Errorf("scan topic stats: %w", err)
		}
		if ts.Topic == "" {
			ts.Topic = "General"
		}
		ts.Accuracy = percentOf(ts.Correct, ts.Answers)
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b TopicStats) int {
		if c := cmp.Compare(a.Accuracy, b.Accuracy); c != 0 {
			return c
		}
		return cmp.Compare(a.Topic, b.Topic)
	})
	return out, nil
}

// WeakAreas returns topics answered at least minAnswers times with accuracy
// under WeakAreaThreshold.
func (r *StatsRepo) WeakAreas(ctx context.Context, documentID int64, minAnswers int) ([]TopicStats, error) {
	all, err := r.TopicPerformance(ctx, documentID)
	if err != nil {
		return nil, err
	}
	var weak []TopicStats
	for _, ts := range all {
		if ts.Answers >= minAnswers && ts.Accuracy < WeakAreaThreshold {
			weak = append(weak, ts)
		}
	}
	return weak, nil
}

// RecentActivity returns per-day answer counts for the last days days,
// newest first.
func (r *StatsRepo) RecentActivity(ctx context.Context, documentID int64, days int) ([]DailyActivity, error) {
	since := time.Now().AddDate(0, 0, -days).Unix()
	day := "date(answered_at, 'unixepoch')"
	query, args := sqlite().Select(day, "COUNT(*)", "COALESCE(SUM(is_correct), 0)").
		From(sqlite().Table(answersTable)).
		Where(entsql.And(
			entsql.EQ("document_id", documentID),
			entsql.GTE("answered_at", since),
		)).
		GroupBy(day).
		OrderBy(entsql.Desc(day)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var out []DailyActivity
	for rows.Next() {
		var d DailyActivity
		if err := rows.Scan(&d.Date, &d.Answers, &d.Correct); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		d.Accuracy = percentOf(d.Correct, d.Answers)
		out = append(out, d)
	}
	return out, rows.Err()
}

func percentOf(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}
