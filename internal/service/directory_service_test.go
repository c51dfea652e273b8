package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDirectoryService(t *testing.T) (*DirectoryService, *repository.UserRepository) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db, nil)
	return NewDirectoryService(userRepo), userRepo
}

func TestListAlumniFiltersRolesAndDisabled(t *testing.T) {
	svc, userRepo := newDirectoryService(t)

	for _, u := range []*model.User{
		{Name: "alum1", Email: "alum1@example.com", Password: "x", Role: model.Alumni, Batch: 2018},
		{Name: "alum2", Email: "alum2@example.com", Password: "x", Role: model.Alumni, Batch: 2020},
		{Name: "student", Email: "student@example.com", Password: "x", Role: model.Student},
		{Name: "hidden", Email: "hidden@example.com", Password: "x", Role: model.Alumni, Disabled: true},
	} {
		require.NoError(t, userRepo.Create(u))
	}

	list, total, err := svc.ListAlumni("", 0, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	// 毕业年份筛选
	list, total, err = svc.ListAlumni("", 2020, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "alum2", list[0].Name)
}

// 目录响应序列化后绝不包含任何联系方式字段
func TestDirectoryNeverLeaksContact(t *testing.T) {
	svc, userRepo := newDirectoryService(t)

	alum := &model.User{
		Name:        "mentor",
		Email:       "mentor@example.com",
		Password:    "x",
		Role:        model.Alumni,
		LinkedinURL: strPtr("https://linkedin.com/in/mentor"),
		PhoneNumber: strPtr("+86-13800000000"),
		Company:     "Acme",
	}
	require.NoError(t, userRepo.Create(alum))

	list, _, err := svc.ListAlumni("", 0, 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 1)

	listJSON, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(listJSON), "mentor@example.com")
	assert.NotContains(t, string(listJSON), "linkedin.com")
	assert.NotContains(t, string(listJSON), "13800000000")

	profile, err := svc.GetAlumnus(alum.ID)
	require.NoError(t, err)
	profileJSON, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(profileJSON), "mentor@example.com")
	assert.NotContains(t, string(profileJSON), "linkedin.com")
	assert.NotContains(t, string(profileJSON), "13800000000")
}

func TestGetAlumnusNotFoundCases(t *testing.T) {
	svc, userRepo := newDirectoryService(t)

	student := &model.User{Name: "stu", Email: "stu@example.com", Password: "x", Role: model.Student}
	require.NoError(t, userRepo.Create(student))
	disabled := &model.User{Name: "off", Email: "off@example.com", Password: "x", Role: model.Alumni, Disabled: true}
	require.NoError(t, userRepo.Create(disabled))

	_, err := svc.GetAlumnus(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = svc.GetAlumnus(student.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
	_, err = svc.GetAlumnus(disabled.ID)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
