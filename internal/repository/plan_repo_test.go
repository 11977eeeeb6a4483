package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/uikit_server/internal/testutil"
)

func TestPlanRepository_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	created := testutil.TestPlan(t, db,
		testutil.WithPlanName("Pro"),
		testutil.WithPrice(29.99),
		testutil.WithDuration(30),
	)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pro", found.Name)
	assert.Equal(t, 29.99, found.Price)
	assert.Equal(t, 30, found.DurationDays)
	assert.NotEmpty(t, found.FeatureList())
}

func TestPlanRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	_, err := repo.GetByID(99999)
	assert.Error(t, err)
}

func TestPlanRepository_ListActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	testutil.TestPlan(t, db, testutil.WithPrice(59.99))
	testutil.TestPlan(t, db, testutil.WithPrice(9.99))
	testutil.TestPlan(t, db, testutil.WithActive(false))

	plans, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	// 价格升序
	assert.Equal(t, 9.99, plans[0].Price)
	assert.Equal(t, 59.99, plans[1].Price)
}

func TestPlanRepository_ListAll_IncludesInactive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	testutil.TestPlan(t, db)
	testutil.TestPlan(t, db, testutil.WithActive(false))

	plans, err := repo.ListAll()
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestPlanRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	plan := testutil.TestPlan(t, db)
	plan.Price = 19.99
	plan.SetFeatures([]string{"新特性"})

	require.NoError(t, repo.Update(plan))

	updated, err := repo.GetByID(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, 19.99, updated.Price)
	assert.Equal(t, []string{"新特性"}, updated.FeatureList())
}

func TestPlanRepository_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewPlanRepository(db)

	plan := testutil.TestPlan(t, db)

	require.NoError(t, repo.Delete(plan.ID))

	_, err := repo.GetByID(plan.ID)
	assert.Error(t, err)
}
