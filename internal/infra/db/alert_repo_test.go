package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/NasaVasa/pricewatch/internal/config"
	"github.com/NasaVasa/pricewatch/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T) *AlertRepository {
	t.Helper()
	cfg := config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "alerts.db"),
	}
	conn, err := Open(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewAlertRepository(conn)
}

func newAlert(userID, itemID string, threshold string, direction domain.Direction) *domain.Alert {
	return &domain.Alert{
		UserID:    userID,
		ItemID:    itemID,
		ItemName:  "Adept's Bag 4",
		Quality:   domain.QualityOutstanding,
		Threshold: decimal.RequireFromString(threshold),
		Direction: direction,
	}
}

func TestCreateThenListByUserPreservesFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	alert := newAlert("42", "T4_BAG", "1250.5", domain.DirectionLower)
	require.NoError(t, repo.Create(ctx, alert))
	require.NotZero(t, alert.ID)

	alerts, err := repo.ListByUser(ctx, "42")
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	got := alerts[0]
	assert.Equal(t, alert.ID, got.ID)
	assert.Equal(t, "42", got.UserID)
	assert.Equal(t, "T4_BAG", got.ItemID)
	assert.Equal(t, "Adept's Bag 4", got.ItemName)
	assert.Equal(t, domain.QualityOutstanding, got.Quality)
	assert.True(t, alert.Threshold.Equal(got.Threshold), "threshold %s != %s", alert.Threshold, got.Threshold)
	assert.Equal(t, domain.DirectionLower, got.Direction)
}

func TestListByUserKeepsInsertionOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := newAlert("1", "T4_BAG", "100", domain.DirectionHigher)
	second := newAlert("1", "T4_BAG", "100", domain.DirectionHigher)
	other := newAlert("2", "T5_CAPE", "10", domain.DirectionLower)
	for _, a := range []*domain.Alert{first, second, other} {
		require.NoError(t, repo.Create(ctx, a))
	}

	alerts, err := repo.ListByUser(ctx, "1")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, first.ID, alerts[0].ID)
	assert.Equal(t, second.ID, alerts[1].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListDistinctItemIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	for _, a := range []*domain.Alert{
		newAlert("1", "T4_BAG", "100", domain.DirectionHigher),
		newAlert("2", "T4_BAG", "200", domain.DirectionLower),
		newAlert("2", "T5_CAPE", "10", domain.DirectionLower),
	} {
		require.NoError(t, repo.Create(ctx, a))
	}

	itemIDs, err := repo.ListDistinctItemIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"T4_BAG", "T5_CAPE"}, itemIDs)
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	alert := newAlert("1", "T4_BAG", "100", domain.DirectionHigher)
	require.NoError(t, repo.Create(ctx, alert))

	removed, err := repo.Delete(ctx, alert.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = repo.Delete(ctx, alert.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)

	removed, err = repo.Delete(ctx, 9999)
	require.NoError(t, err)
	assert.EqualValues(t, 0, removed)
}

func TestDirectionConstraint(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	err := repo.Create(ctx, newAlert("1", "T4_BAG", "100", domain.Direction("sideways")))
	require.Error(t, err)

	alerts, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.Config{DBDriver: "mysql"}, zap.NewNop())
	require.ErrorContains(t, err, "unsupported database driver")
}
