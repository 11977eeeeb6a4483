package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/repository"
	"github.com/qs3c/uikit_server/internal/testutil"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	service := NewUserService(repository.NewUserRepository(db), nil, &config.Config{})

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestUserService_GetProfile(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithName("张三"))

	info, err := service.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "张三", info.Name)
	assert.Equal(t, user.Email, info.Email)
	assert.False(t, info.HasGoogle)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	service, _, cleanup := setupUserService(t)
	defer cleanup()

	_, err := service.GetProfile(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db)
	newName := "李四"

	info, err := service.UpdateProfile(user.ID, &dto.UpdateProfileRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "李四", info.Name)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashedStr := string(hashed)
	user := testutil.TestUser(t, db)
	require.NoError(t, db.Model(user).Update("password_hash", hashedStr).Error)

	err = service.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "oldpassword",
		NewPassword: "newpassword123",
	})
	require.NoError(t, err)

	updated, err := repository.NewUserRepository(db).GetByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*updated.PasswordHash), []byte("newpassword123")))
}

func TestUserService_ChangePassword_WrongOld(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	hashed, err := bcrypt.GenerateFromPassword([]byte("oldpassword"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := testutil.TestUser(t, db)
	require.NoError(t, db.Model(user).Update("password_hash", string(hashed)).Error)

	err = service.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "wrongpassword",
		NewPassword: "newpassword123",
	})
	assert.ErrorIs(t, err, ErrWrongOldPassword)
}

func TestUserService_ChangePassword_OAuthAccount(t *testing.T) {
	service, db, cleanup := setupUserService(t)
	defer cleanup()

	user := testutil.TestUser(t, db, testutil.WithGoogleID("google-123"))

	err := service.ChangePassword(user.ID, &dto.ChangePasswordRequest{
		OldPassword: "whatever",
		NewPassword: "newpassword123",
	})
	assert.ErrorIs(t, err, ErrPasswordLogin)
}
