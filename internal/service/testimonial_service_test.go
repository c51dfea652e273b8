package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestimonialService(t *testing.T) (*TestimonialService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewTestimonialService(repository.NewTestimonialRepository(db)), db
}

func TestTestimonialSubmitAndModeration(t *testing.T) {
	svc, db := newTestimonialService(t)
	alice := createUser(t, db, "alice", model.Alumni)

	_, err := svc.Submit(alice.ID, "   ")
	assert.Error(t, err)
	_, err = svc.Submit(alice.ID, strings.Repeat("字", 501))
	assert.Error(t, err)

	submitted, err := svc.Submit(alice.ID, "  母校改变了我的人生轨迹  ")
	require.NoError(t, err)
	assert.Equal(t, "母校改变了我的人生轨迹", submitted.Content)
	assert.False(t, submitted.Approved)

	// 未审核的感言不对外展示
	approved, total, err := svc.ListApproved(1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, approved)

	// 管理列表能看到
	all, total, err := svc.ListAll(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Approve(submitted.ID))

	approved, total, err = svc.ListApproved(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, approved, 1)
	assert.True(t, approved[0].Approved)
}

func TestTestimonialDeletePermissions(t *testing.T) {
	svc, db := newTestimonialService(t)
	alice := createUser(t, db, "alice", model.Alumni)
	bob := createUser(t, db, "bob", model.Alumni)

	submitted, err := svc.Submit(alice.ID, "一段感言")
	require.NoError(t, err)

	// 其他用户不可删除
	err = svc.Delete(submitted.ID, bob.ID, false)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 管理员可删任何人的
	require.NoError(t, svc.Delete(submitted.ID, bob.ID, true))

	_, err = svc.Submit(alice.ID, "另一段感言")
	require.NoError(t, err)

	all, _, err := svc.ListAll(1, 20)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// 本人可删自己的
	require.NoError(t, svc.Delete(all[0].ID, alice.ID, false))

	err = svc.Delete(9999, alice.ID, false)
	assert.ErrorIs(t, err, util.ErrTestimonialNotFound)
}
