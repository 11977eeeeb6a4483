package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func setupPlanService(t *testing.T) (*PlanService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewPlanService(repository.NewPlanRepository(db))

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestPlanService_Create(t *testing.T) {
	service, _, cleanup := setupPlanService(t)
	defer cleanup()

	info, err := service.Create(&dto.CreatePlanRequest{
		Name:         "月度会员",
		Description:  "按月订阅",
		Price:        29.99,
		DurationDays: 30,
		Features:     []string{"全部组件源码", "无限收藏"},
	})
	require.NoError(t, err)
	assert.NotZero(t, info.ID)
	assert.True(t, info.IsActive)
	assert.Equal(t, []string{"全部组件源码", "无限收藏"}, info.Features)
}

func TestPlanService_ListActive_SortedByPrice(t *testing.T) {
	service, db, cleanup := setupPlanService(t)
	defer cleanup()

	testutil.TestPlan(t, db, testutil.WithPrice(99.99))
	testutil.TestPlan(t, db, testutil.WithPrice(9.99))
	testutil.TestPlan(t, db, testutil.WithPrice(49.99), testutil.WithActive(false))

	plans, err := service.ListActive()
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, 9.99, plans[0].Price)
	assert.Equal(t, 99.99, plans[1].Price)
}

func TestPlanService_Update(t *testing.T) {
	service, db, cleanup := setupPlanService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db)
	newPrice := 39.99

	info, err := service.Update(plan.ID, &dto.UpdatePlanRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 39.99, info.Price)
	assert.Equal(t, plan.Name, info.Name)
}

func TestPlanService_Update_NotFound(t *testing.T) {
	service, _, cleanup := setupPlanService(t)
	defer cleanup()

	newPrice := 39.99
	_, err := service.Update(99999, &dto.UpdatePlanRequest{Price: &newPrice})
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestPlanService_Deactivate(t *testing.T) {
	service, db, cleanup := setupPlanService(t)
	defer cleanup()

	plan := testutil.TestPlan(t, db)
	require.NoError(t, service.Deactivate(plan.ID))

	plans, err := service.ListActive()
	require.NoError(t, err)
	assert.Empty(t, plans)

	// 下架不删数据，管理后台仍可见
	all, err := service.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
