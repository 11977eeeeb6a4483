package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	passwordHash := "$2a$10$abcdefghijklmnopqrstuvwxyz123456" // bcrypt hash placeholder
	user := &model.User{
		Email:        fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		PasswordHash: &passwordHash,
		Name:         fmt.Sprintf("testuser_%d", time.Now().UnixNano()%10000),
		Role:         model.RoleUser,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithName 设置用户名
func WithName(name string) func(*model.User) {
	return func(u *model.User) {
		u.Name = name
	}
}

// WithRole 设置角色
func WithRole(role string) func(*model.User) {
	return func(u *model.User) {
		u.Role = role
	}
}

// WithGoogleID 设置 Google ID
func WithGoogleID(googleID string) func(*model.User) {
	return func(u *model.User) {
		u.GoogleID = &googleID
		u.PasswordHash = nil
	}
}

// TestPlan 创建测试套餐
func TestPlan(t *testing.T, db *gorm.DB, opts ...func(*model.Plan)) *model.Plan {
	t.Helper()

	plan := &model.Plan{
		Name:         fmt.Sprintf("Plan %d", time.Now().UnixNano()%10000),
		Description:  "Test plan",
		Price:        29.99,
		DurationDays: 30,
		IsActive:     true,
	}
	plan.SetFeatures([]string{"全部组件源码", "无限收藏"})

	for _, opt := range opts {
		opt(plan)
	}

	if err := db.Create(plan).Error; err != nil {
		t.Fatalf("Failed to create test plan: %v", err)
	}

	return plan
}

// WithPlanName 设置套餐名
func WithPlanName(name string) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Name = name
	}
}

// WithPrice 设置价格
func WithPrice(price float64) func(*model.Plan) {
	return func(p *model.Plan) {
		p.Price = price
	}
}

// WithDuration 设置订阅时长（天）
func WithDuration(days int) func(*model.Plan) {
	return func(p *model.Plan) {
		p.DurationDays = days
	}
}

// WithActive 设置套餐是否可售
func WithActive(active bool) func(*model.Plan) {
	return func(p *model.Plan) {
		p.IsActive = active
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID, planID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanID:    planID,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
		Status:    model.SubscriptionActive,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithStatus 设置订阅状态
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// WithEndDate 设置订阅截止日期
func WithEndDate(endDate time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.EndDate = endDate
	}
}

// TestPayment 创建测试支付记录
func TestPayment(t *testing.T, db *gorm.DB, subscriptionID, userID int64, amount float64) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		SubscriptionID: subscriptionID,
		UserID:         userID,
		Amount:         amount,
		Status:         model.PaymentCompleted,
		PaymentMethod:  "card",
		TransactionID:  fmt.Sprintf("tx_%d", time.Now().UnixNano()),
		PaymentDate:    time.Now(),
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// TestComponent 创建测试组件
func TestComponent(t *testing.T, db *gorm.DB, opts ...func(*model.Component)) *model.Component {
	t.Helper()

	component := &model.Component{
		Name:        fmt.Sprintf("Component %d", time.Now().UnixNano()%10000),
		Category:    "button",
		Color:       "#2563eb",
		CSSContent:  ".btn { padding: 8px 16px; }",
		HTMLContent: `<button class="btn">Click</button>`,
	}

	for _, opt := range opts {
		opt(component)
	}

	if err := db.Create(component).Error; err != nil {
		t.Fatalf("Failed to create test component: %v", err)
	}

	return component
}

// WithComponentName 设置组件名
func WithComponentName(name string) func(*model.Component) {
	return func(c *model.Component) {
		c.Name = name
	}
}

// WithCategory 设置组件分类
func WithCategory(category string) func(*model.Component) {
	return func(c *model.Component) {
		c.Category = category
	}
}

// WithViewCount 设置组件浏览量
func WithViewCount(count int64) func(*model.Component) {
	return func(c *model.Component) {
		c.ViewCount = count
	}
}

// TestFavorite 创建测试收藏
func TestFavorite(t *testing.T, db *gorm.DB, userID, componentID int64) *model.Favorite {
	t.Helper()

	favorite := &model.Favorite{
		UserID:      userID,
		ComponentID: componentID,
	}

	if err := db.Create(favorite).Error; err != nil {
		t.Fatalf("Failed to create test favorite: %v", err)
	}

	return favorite
}
