package usecase

import (
	"context"
	"time"

	"github.com/iho/fxreport/internal/domain"
)

// Gateway executes one SQL text against the remote store and returns
// the normalized row sequence. Implementations own retry policy and
// per-call timeouts.
type Gateway interface {
	Execute(ctx context.Context, queryText string) ([]domain.Row, error)
}

// DetailCache is the session-scoped mapping from account identifier to
// its resolved detail rows. A cached empty slice means "fetched, no
// rows" and must not be treated as absent.
type DetailCache interface {
	Get(ctx context.Context, accountID string) ([]domain.DetailRow, bool, error)
	Put(ctx context.Context, accountID string, rows []domain.DetailRow) error
	PutBatch(ctx context.Context, entries map[string][]domain.DetailRow) error
	InvalidateAll(ctx context.Context) error
}

// Clock abstracts time for throttle decisions.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
