package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// LLMUsage is the token spend of one model for one purpose.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUsage aggregates recorded LLM calls by purpose and model, largest
// spend first.
func (s *Store) LLMUsage(ctx context.Context) ([]LLMUsage, error) {
	query, args := sqlite().
		Select(
			"purpose", "model",
			entsql.Count("*"),
			"COALESCE(SUM(input_tokens), 0)",
			"COALESCE(SUM(output_tokens), 0)",
			"CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)",
		).
		From(sqlite().Table(llmRequestsTable)).
		GroupBy("purpose", "model").
		OrderBy(entsql.Desc("COALESCE(SUM(input_tokens), 0) + COALESCE(SUM(output_tokens), 0)")).
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsage
	for rows.Next() {
		var u LLMUsage
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
