package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/quizrogue/internal/game"
)

// SaveRepo stores saved games. It implements game.SaveStore. Deletes are
// soft: the row is flagged inactive and hidden from reads.
type SaveRepo struct {
	db *sql.DB
}

var _ game.SaveStore = (*SaveRepo)(nil)

var saveColumns = []string{
	"id", "document_id", "save_name", "player_hp", "player_max_hp", "player_level",
	"current_encounter", "score", "active_powerups", "current_enemy", "game_state",
	"created_at", "updated_at",
}

func (r *SaveRepo) CreateSave(ctx context.Context, rec game.SaveRecord) (int64, error) {
	now := time.Now().Unix()
	query, args := sqlite().Insert(savesTable).
		Columns(append(saveColumns[1:], "is_active")...).
		Values(rec.DocumentID, rec.Name, rec.PlayerHP, rec.PlayerMaxHP, rec.PlayerLevel,
			rec.CurrentEncounter, rec.Score, rec.ActivePowerups, rec.CurrentEnemy, rec.GameState,
			now, now, true).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert save: %w", err)
	}
	return res.LastInsertId()
}

func (r *SaveRepo) GetSave(ctx context.Context, id int64) (*game.SaveRecord, error) {
	query, args := sqlite().Select(saveColumns...).
		From(sqlite().Table(savesTable)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("is_active", true))).
		Query()
	rec, err := scanSave(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *SaveRepo) DeleteSave(ctx context.Context, id int64) error {
	query, args := sqlite().Update(savesTable).
		Set("is_active", false).
		Set("updated_at", time.Now().Unix()).
		Where(entsql.EQ("id", id)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (r *SaveRepo) ListSaves(ctx context.Context, documentID int64) ([]game.SaveRecord, error) {
	query, args := sqlite().Select(saveColumns...).
		From(sqlite().Table(savesTable)).
		Where(entsql.And(entsql.EQ("document_id", documentID), entsql.EQ("is_active", true))).
		OrderBy(entsql.Desc("updated_at"), entsql.Desc("id")).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var recs []game.SaveRecord
	for rows.Next() {
		rec, err := scanSave(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func scanSave(row scanner) (*game.SaveRecord, error) {
	var (
		rec              game.SaveRecord
		created, updated int64
	)
	err := row.Scan(&rec.ID, &rec.DocumentID, &rec.Name, &rec.PlayerHP, &rec.PlayerMaxHP, &rec.PlayerLevel,
		&rec.CurrentEncounter, &rec.Score, &rec.ActivePowerups, &rec.CurrentEnemy, &rec.GameState,
		&created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan save: %w", err)
	}
	rec.CreatedAt = time.Unix(created, 0)
	rec.UpdatedAt = time.Unix(updated, 0)
	return &rec, nil
}
