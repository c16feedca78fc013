package db

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pautas-radio/internal/core/calc"
	"pautas-radio/internal/core/domain"
	"pautas-radio/internal/core/port/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSeedInsertsDemoOrders(t *testing.T) {
	repo := mocks.NewMockOrderRepository(t)
	repo.EXPECT().CountByStatus(mock.Anything).Return(map[domain.OTCStatus]int64{}, nil)

	var created []*domain.Order
	repo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*domain.Order")).
		RunAndReturn(func(_ context.Context, o *domain.Order) error {
			o.ID = int64(len(created) + 1)
			o.Folio = domain.FormatFolio(o.ID)
			created = append(created, o)
			return nil
		}).Times(3)

	require.NoError(t, Seed(context.Background(), repo, discardLogger()))
	require.Len(t, created, 3)

	for _, o := range created {
		assert.True(t, o.AgreementType.Valid())
		assert.True(t, o.Tax.Option.Valid())
		assert.False(t, o.EndDate.Before(o.StartDate.Time))
		require.Len(t, o.Schedule, 1)
		assert.Positive(t, o.Schedule[0].TotalImpacts)
		assert.Len(t, o.Materials, 1)
		assert.Equal(t, o.Status != domain.StatusDraft, o.SubmittedAt != nil)

		days := calc.Calendar(o.StartDate.Time, o.EndDate.Time)
		for key := range o.Schedule[0].DailyCounts {
			assert.Contains(t, keys(days), key)
		}
	}
	assert.Equal(t, "FOLIO-001", created[0].Folio)
}

func TestSeedSkipsNonEmptyTable(t *testing.T) {
	repo := mocks.NewMockOrderRepository(t)
	repo.EXPECT().CountByStatus(mock.Anything).
		Return(map[domain.OTCStatus]int64{domain.StatusDraft: 0, domain.StatusSales: 2}, nil)

	require.NoError(t, Seed(context.Background(), repo, discardLogger()))
}

func TestSeedPropagatesErrors(t *testing.T) {
	repo := mocks.NewMockOrderRepository(t)
	repo.EXPECT().CountByStatus(mock.Anything).Return(nil, nil)
	repo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	err := Seed(context.Background(), repo, discardLogger())
	assert.ErrorContains(t, err, "boom")
}

func keys(days []domain.Day) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Key
	}
	return out
}
