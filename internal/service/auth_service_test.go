package service

import (
	"alumni_connect_backend/internal/config"
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db, nil)
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-at-least-32-characters!!"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(userRepo, cfg), userRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, userRepo := newAuthService(t)

	user := &model.User{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "secret123",
		Role:     model.Alumni,
	}
	require.NoError(t, svc.Register(user))

	// 密码落库前已经哈希
	stored, err := userRepo.FindByEmail("zhangsan@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)

	// 邮箱重复
	err = svc.Register(&model.User{
		Name:     "李四",
		Email:    "zhangsan@example.com",
		Password: "another",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	token, err := svc.Login("zhangsan@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret-at-least-32-characters!!")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, model.Alumni, claims.Role)

	_, err = svc.Login("zhangsan@example.com", "wrong")
	assert.Error(t, err)
	_, err = svc.Login("nobody@example.com", "secret123")
	assert.Error(t, err)
}

func TestRegisterDemotesAdminRole(t *testing.T) {
	svc, userRepo := newAuthService(t)

	require.NoError(t, svc.Register(&model.User{
		Name:     "入侵者",
		Email:    "intruder@example.com",
		Password: "secret123",
		Role:     model.Admin,
	}))

	stored, err := userRepo.FindByEmail("intruder@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.Student, stored.Role)
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, userRepo := newAuthService(t)

	user := &model.User{
		Name:     "王五",
		Email:    "wangwu@example.com",
		Password: "secret123",
	}
	require.NoError(t, svc.Register(user))

	stored, err := userRepo.FindByEmail("wangwu@example.com")
	require.NoError(t, err)
	stored.Disabled = true
	require.NoError(t, userRepo.Update(stored))

	_, err = svc.Login("wangwu@example.com", "secret123")
	assert.Error(t, err)
}
