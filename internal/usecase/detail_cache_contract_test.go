package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/fxreport/internal/domain"
	"github.com/iho/fxreport/internal/query"
	"github.com/iho/fxreport/internal/usecase"
	"github.com/iho/fxreport/internal/usecase/mocks"
)

// Verifies the exact cache call sequence of a preload cycle: one read
// per visible account, then a single batched publish.
func TestPreloader_CacheCallSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockGomockDetailCache(ctrl)
	gw := mocks.NewMockGateway()
	gw.ExecuteFunc = func(ctx context.Context, queryText string) ([]domain.Row, error) {
		return nil, nil
	}

	p := usecase.NewPreloader(
		query.NewDetailBuilder(domain.DefaultCatalog()),
		gw,
		cache,
		mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		&mocks.MockIDGenerator{},
		zerolog.Nop(),
		nil,
		usecase.PreloadConfig{},
	)

	ctx := context.Background()

	gomock.InOrder(
		cache.EXPECT().Get(ctx, "A-1").Return(nil, false, nil),
		cache.EXPECT().Get(ctx, "A-2").Return(nil, true, nil),
		cache.EXPECT().PutBatch(ctx, gomock.Len(1)).Return(nil),
	)

	p.Preload(ctx, []string{"A-1", "A-2"})
}

func TestPreloader_SetSelectionInvalidatesThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockGomockDetailCache(ctrl)

	p := usecase.NewPreloader(
		query.NewDetailBuilder(domain.DefaultCatalog()),
		mocks.NewMockGateway(),
		cache,
		mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		&mocks.MockIDGenerator{},
		zerolog.Nop(),
		nil,
		usecase.PreloadConfig{},
	)

	ctx := context.Background()

	cache.EXPECT().InvalidateAll(ctx).Return(nil)

	if err := p.SetSelection(ctx, []int{2, 3}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}

	// Unchanged selection: no further InvalidateAll expected.
	if err := p.SetSelection(ctx, []int{2, 3}); err != nil {
		t.Fatalf("set selection failed: %v", err)
	}
}
