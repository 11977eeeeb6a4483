package handler

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/service"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func setupFavoriteHandler(t *testing.T) (*FavoriteHandler, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)

	favoriteService := service.NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewComponentRepository(db),
		repository.NewSubscriptionRepository(db),
	)
	handler := NewFavoriteHandler(favoriteService)

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return handler, db, cleanup
}

func TestFavoriteHandler_AddAndList(t *testing.T) {
	handler, db, cleanup := setupFavoriteHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	component := testutil.TestComponent(t, db)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/favorites/:componentId", handler.Add)
	router.GET("/favorites", handler.List)

	w := performRequest(router, "POST", "/favorites/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)

	w = performRequest(router, "GET", "/favorites", nil)
	resp = parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestFavoriteHandler_Add_Duplicate(t *testing.T) {
	handler, db, cleanup := setupFavoriteHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	component := testutil.TestComponent(t, db)
	testutil.TestFavorite(t, db, user.ID, component.ID)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/favorites/:componentId", handler.Add)

	w := performRequest(router, "POST", "/favorites/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeDuplicateAction, resp.Code)
}

func TestFavoriteHandler_Add_ComponentNotFound(t *testing.T) {
	handler, db, cleanup := setupFavoriteHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.POST("/favorites/:componentId", handler.Add)

	w := performRequest(router, "POST", "/favorites/99999", nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}

func TestFavoriteHandler_Remove(t *testing.T) {
	handler, db, cleanup := setupFavoriteHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	component := testutil.TestComponent(t, db)
	testutil.TestFavorite(t, db, user.ID, component.ID)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/favorites/:componentId", handler.Remove)

	w := performRequest(router, "DELETE", "/favorites/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestFavoriteHandler_Remove_NotFavorited(t *testing.T) {
	handler, db, cleanup := setupFavoriteHandler(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	component := testutil.TestComponent(t, db)

	router := gin.New()
	router.Use(mockAuth(user.ID))
	router.DELETE("/favorites/:componentId", handler.Remove)

	w := performRequest(router, "DELETE", "/favorites/"+formatID(component.ID), nil)
	resp := parseResponse(t, w)
	assert.Equal(t, response.CodeResourceNotFound, resp.Code)
}
