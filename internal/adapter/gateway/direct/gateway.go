package direct

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/iho/fxreport/internal/domain"
)

// Gateway executes report queries directly against the ledger database
// instead of going through the SQL proxy. Used by deployments that sit
// next to the database; the row shape matches the proxy path so the
// rest of the pipeline is unchanged.
type Gateway struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// New creates a direct gateway over an existing pool.
func New(pool *pgxpool.Pool, logger zerolog.Logger) *Gateway {
	return &Gateway{pool: pool, logger: logger}
}

// Execute runs one query and returns its rows keyed by column name.
func (g *Gateway) Execute(ctx context.Context, queryText string) ([]domain.Row, error) {
	rows, err := g.pool.Query(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("direct gateway query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	out := []domain.Row{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("direct gateway scan: %w", err)
		}

		row := make(domain.Row, len(fields))
		for i, fd := range fields {
			row[fd.Name] = plainValue(values[i])
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("direct gateway rows: %w", err)
	}
	return out, nil
}

// plainValue reduces driver-specific types (pgtype numerics and the
// like) to the plain kinds the row accessors understand.
func plainValue(v any) any {
	switch v.(type) {
	case nil, bool, string, int64, float64, time.Time:
		return v
	}

	if valuer, ok := v.(driver.Valuer); ok {
		if plain, err := valuer.Value(); err == nil {
			return plain
		}
	}

	return fmt.Sprintf("%v", v)
}
