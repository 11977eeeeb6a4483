package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func TestSubscriptionRepository_HasActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	now := time.Now()

	has, err := repo.HasActive(user.ID, now)
	require.NoError(t, err)
	assert.False(t, has)

	testutil.TestSubscription(t, db, user.ID, plan.ID)

	has, err = repo.HasActive(user.ID, now)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestSubscriptionRepository_HasActive_ExpiredEndDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	// 状态仍是 ACTIVE，但 end_date 已过：读取时视为无效
	testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -1)),
	)

	has, err := repo.HasActive(user.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSubscriptionRepository_HasActive_CancelledStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithStatus(model.SubscriptionCancelled),
	)

	has, err := repo.HasActive(user.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSubscriptionRepository_CreateWithPayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	now := time.Now()

	sub := &model.Subscription{
		UserID:    user.ID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, plan.DurationDays),
		Status:    model.SubscriptionActive,
	}
	payment := &model.Payment{
		UserID:      user.ID,
		Amount:      plan.Price,
		Status:      model.PaymentCompleted,
		PaymentDate: now,
	}

	err := repo.CreateWithPayment(sub, payment)
	require.NoError(t, err)
	assert.NotZero(t, sub.ID)
	assert.Equal(t, sub.ID, payment.SubscriptionID)
}

func TestSubscriptionRepository_CreateWithPayment_DuplicateActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	now := time.Now()
	sub := &model.Subscription{
		UserID:    user.ID,
		PlanID:    plan.ID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
		Status:    model.SubscriptionActive,
	}
	payment := &model.Payment{
		UserID:      user.ID,
		Amount:      plan.Price,
		Status:      model.PaymentCompleted,
		PaymentDate: now,
	}

	err := repo.CreateWithPayment(sub, payment)
	assert.ErrorIs(t, err, ErrActiveExists)

	// 事务回滚：订阅和支付都不应落库
	var subCount, payCount int64
	db.Model(&model.Subscription{}).Where("user_id = ?", user.ID).Count(&subCount)
	db.Model(&model.Payment{}).Where("user_id = ?", user.ID).Count(&payCount)
	assert.Equal(t, int64(1), subCount)
	assert.Equal(t, int64(0), payCount)
}

func TestSubscriptionRepository_GetActiveByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	created := testutil.TestSubscription(t, db, user.ID, plan.ID)

	sub, err := repo.GetActiveByUser(user.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, created.ID, sub.ID)
}

func TestSubscriptionRepository_GetActiveByUser_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	_, err := repo.GetActiveByUser(99999, time.Now())
	assert.Error(t, err)
}

func TestSubscriptionRepository_ExpireDue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user1 := testutil.TestUser(t, db)
	user2 := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	// 一条已过期但状态仍为 ACTIVE，一条尚未到期
	overdue := testutil.TestSubscription(t, db, user1.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, -2)),
	)
	current := testutil.TestSubscription(t, db, user2.ID, plan.ID)

	affected, err := repo.ExpireDue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	updated, err := repo.GetByID(overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionExpired, updated.Status)

	untouched, err := repo.GetByID(current.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionActive, untouched.Status)
}

func TestSubscriptionRepository_ListExpiringBetween(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user1 := testutil.TestUser(t, db)
	user2 := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	soon := testutil.TestSubscription(t, db, user1.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, 2)),
	)
	testutil.TestSubscription(t, db, user2.ID, plan.ID,
		testutil.WithEndDate(time.Now().AddDate(0, 0, 20)),
	)

	subs, err := repo.ListExpiringBetween(time.Now(), time.Now().AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, soon.ID, subs[0].ID)
}

func TestSubscriptionRepository_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user1 := testutil.TestUser(t, db)
	user2 := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	testutil.TestSubscription(t, db, user1.ID, plan.ID)
	testutil.TestSubscription(t, db, user2.ID, plan.ID,
		testutil.WithStatus(model.SubscriptionCancelled),
	)

	count, err := repo.CountActive(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubscriptionRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db)

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)

	testutil.TestSubscription(t, db, user.ID, plan.ID,
		testutil.WithStatus(model.SubscriptionExpired),
	)
	testutil.TestSubscription(t, db, user.ID, plan.ID)

	subs, total, err := repo.ListByUser(user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, subs, 2)
}
