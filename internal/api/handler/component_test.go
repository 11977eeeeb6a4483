package handler

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/service"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// mockAuth 模拟认证中间件
func mockAuth(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func setupComponentHandler(t *testing.T) (*ComponentHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	componentService := service.NewComponentService(
		repository.NewComponentRepository(db),
		repository.NewFavoriteRepository(db),
		repository.NewSubscriptionRepository(db),
		nil,
		nil,
		nil,
	)
	handler := NewComponentHandler(componentService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func TestComponentHandler_List_Anonymous(t *testing.T) {
	handler, db, cleanup := setupComponentHandler(t)
	defer cleanup()

	testutil.TestComponent(t, db)
	testutil.TestComponent(t, db)

	router := gin.New()
	router.GET("/components", handler.List)

	w := performRequest(router, "GET", "/components", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["total"])

	items, ok := data["items"].([]interface{})
	require.True(t, ok)
	for _, item := range items {
		component := item.(map[string]interface{})
		assert.Nil(t, component["css_content"])
		assert.Nil(t, component["html_content"])
		assert.Equal(t, true, component["requires_subscription"])
	}
}

func TestComponentHandler_Get_Subscribed(t *testing.T) {
	handler, db, cleanup := setupComponentHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	plan := testutil.TestPlan(t, db)
	testutil.TestSubscription(t, db, user.ID, plan.ID)
	component := testutil.TestComponent(t, db)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.GET("/components/:id", handler.Get)

	w := performRequest(router, "GET", "/components/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, component.CSSContent, data["css_content"])
	assert.Equal(t, false, data["requires_subscription"])
}

func TestComponentHandler_Get_NotFound(t *testing.T) {
	handler, _, cleanup := setupComponentHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/components/:id", handler.Get)

	w := performRequest(router, "GET", "/components/99999", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestComponentHandler_Get_InvalidID(t *testing.T) {
	handler, _, cleanup := setupComponentHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/components/:id", handler.Get)

	w := performRequest(router, "GET", "/components/abc", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestComponentHandler_Categories(t *testing.T) {
	handler, db, cleanup := setupComponentHandler(t)
	defer cleanup()

	testutil.TestComponent(t, db, testutil.WithCategory("button"))
	testutil.TestComponent(t, db, testutil.WithCategory("card"))

	router := gin.New()
	router.GET("/components/categories", handler.Categories)

	w := performRequest(router, "GET", "/components/categories", nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
	categories := resp.Data.([]interface{})
	assert.Len(t, categories, 2)
}

func TestComponentHandler_Create(t *testing.T) {
	handler, _, cleanup := setupComponentHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/components", handler.Create)

	w := performRequest(router, "POST", "/components", dto.CreateComponentRequest{
		Name:        "Glow Card",
		Category:    "card",
		CSSContent:  ".card { border-radius: 12px; }",
		HTMLContent: `<div class="card"></div>`,
	})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestComponentHandler_Create_MissingFields(t *testing.T) {
	handler, _, cleanup := setupComponentHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/components", handler.Create)

	w := performRequest(router, "POST", "/components", map[string]string{"name": "x"})
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeParamError, resp.Code)
}

func TestComponentHandler_Delete(t *testing.T) {
	handler, db, cleanup := setupComponentHandler(t)
	defer cleanup()

	component := testutil.TestComponent(t, db)

	router := gin.New()
	router.DELETE("/components/:id", handler.Delete)

	w := performRequest(router, "DELETE", "/components/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)

	assert.Equal(t, response.CodeSuccess, resp.Code)
}
