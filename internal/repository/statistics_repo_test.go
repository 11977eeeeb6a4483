package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func TestStatisticsRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatisticsRepository(db)

	stat := &model.Statistic{
		Day:                 "2025-06-01",
		Views:               120,
		NewUsers:            5,
		NewSubscriptions:    2,
		ActiveSubscriptions: 40,
		Revenue:             59.98,
		ConversionRate:      0.4,
	}
	require.NoError(t, repo.Create(stat))

	found, err := repo.GetByDay("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(120), found.Views)
	assert.Equal(t, 59.98, found.Revenue)
}

func TestStatisticsRepository_GetByDay_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatisticsRepository(db)

	_, err := repo.GetByDay("2025-06-02")
	assert.Error(t, err)
}

func TestStatisticsRepository_Create_DuplicateDayRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatisticsRepository(db)

	require.NoError(t, repo.Create(&model.Statistic{Day: "2025-06-01", Views: 1}))

	// day 唯一：快照写入后不可覆盖
	err := repo.Create(&model.Statistic{Day: "2025-06-01", Views: 999})
	assert.Error(t, err)

	found, err := repo.GetByDay("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Views)
}

func TestStatisticsRepository_ListRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewStatisticsRepository(db)

	require.NoError(t, repo.Create(&model.Statistic{Day: "2025-06-01"}))
	require.NoError(t, repo.Create(&model.Statistic{Day: "2025-06-02"}))
	require.NoError(t, repo.Create(&model.Statistic{Day: "2025-06-10"}))

	stats, err := repo.ListRange("2025-06-01", "2025-06-05")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "2025-06-01", stats[0].Day)
	assert.Equal(t, "2025-06-02", stats[1].Day)
}
