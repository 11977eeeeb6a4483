package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	_ = NewUserRepository(db)

	user := testutil.TestUser(t, db, testutil.WithEmail("test@example.com"))

	assert.NotZero(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	created := testutil.TestUser(t, db)

	found, err := repo.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Email, found.Email)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	_, err := repo.GetByID(99999)
	assert.Error(t, err)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithEmail("unique@example.com"))

	found, err := repo.GetByEmail("unique@example.com")
	require.NoError(t, err)
	assert.Equal(t, "unique@example.com", found.Email)
}

func TestUserRepository_GetByGoogleID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithGoogleID("google-123"))

	found, err := repo.GetByGoogleID("google-123")
	require.NoError(t, err)
	require.NotNil(t, found.GoogleID)
	assert.Equal(t, "google-123", *found.GoogleID)
	assert.Nil(t, found.PasswordHash)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db, testutil.WithEmail("exists@example.com"))

	exists, err := repo.ExistsByEmail("exists@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	notExists, err := repo.ExistsByEmail("notexists@example.com")
	require.NoError(t, err)
	assert.False(t, notExists)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	user := testutil.TestUser(t, db)

	err := repo.UpdateFields(user.ID, map[string]interface{}{
		"avatar_url": "https://cdn.example.com/avatar.png",
		"name":       "新名字",
	})
	require.NoError(t, err)

	updated, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatar.png", updated.AvatarURL)
	assert.Equal(t, "新名字", updated.Name)
}

func TestUserRepository_CountCreatedBetween(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	testutil.TestUser(t, db)
	testutil.TestUser(t, db)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)

	count, err := repo.CountCreatedBetween(from, to)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountCreatedBetween(from.AddDate(0, 0, -2), to.AddDate(0, 0, -2))
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserRepository_List(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)

	for i := 0; i < 3; i++ {
		testutil.TestUser(t, db)
	}

	users, total, err := repo.List(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 2)
}
