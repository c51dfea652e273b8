package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.MentorshipRequest{},
		&model.Event{},
		&model.EventRegistration{},
		&model.Testimonial{},
	))
	return db
}

func newMentorshipService(t *testing.T) (*MentorshipService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	userRepo := repository.NewUserRepository(db, nil)
	return NewMentorshipService(repository.NewMentorshipRepository(db), userRepo), db
}

func createUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createAlumnus(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	u := &model.User{
		Name:        name,
		Email:       name + "@example.com",
		Password:    "hashed",
		Role:        model.Alumni,
		LinkedinURL: strPtr("https://linkedin.com/in/" + name),
		PhoneNumber: strPtr("+86-13800000001"),
		Batch:       2018,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreateRequest(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	view, err := svc.CreateRequest(student.ID, mentor.ID, "  请多指教  ")
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, model.MentorshipPending, view.Status)
	assert.Equal(t, "请多指教", view.RequesterMessage)
	assert.Nil(t, view.Tier)
	// pending 状态下不披露任何联系方式
	assert.Nil(t, view.TargetContact)
	require.NotNil(t, view.Target)
	assert.Equal(t, mentor.Name, view.Target.Name)
}

func TestCreateRequestValidation(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")
	faculty := createUser(t, db, "faculty", model.Faculty)

	_, err := svc.CreateRequest(student.ID, student.ID, "hello")
	assert.ErrorIs(t, err, util.ErrSelfRequest)

	_, err = svc.CreateRequest(student.ID, mentor.ID, "   ")
	assert.ErrorIs(t, err, util.ErrEmptyMessage)

	_, err = svc.CreateRequest(student.ID, mentor.ID, strings.Repeat("字", 201))
	assert.ErrorIs(t, err, util.ErrMessageTooLong)

	// 正好200个字符合法
	_, err = svc.CreateRequest(student.ID, mentor.ID, strings.Repeat("字", 200))
	assert.NoError(t, err)

	// 目标不是校友
	_, err = svc.CreateRequest(student.ID, faculty.ID, "hello")
	assert.ErrorIs(t, err, util.ErrTargetNotAlumni)

	// 目标不存在
	_, err = svc.CreateRequest(student.ID, 9999, "hello")
	assert.ErrorIs(t, err, util.ErrTargetNotAlumni)

	// 目标被禁用
	disabled := createAlumnus(t, db, "disabled")
	require.NoError(t, db.Model(disabled).Update("disabled", true).Error)
	_, err = svc.CreateRequest(student.ID, disabled.ID, "hello")
	assert.ErrorIs(t, err, util.ErrTargetNotAlumni)
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	first, err := svc.CreateRequest(student.ID, mentor.ID, "first")
	require.NoError(t, err)

	// 同一对用户已有待处理申请
	_, err = svc.CreateRequest(student.ID, mentor.ID, "second")
	assert.ErrorIs(t, err, util.ErrDuplicateRequest)

	// 反方向不受影响
	other := createAlumnus(t, db, "other")
	_, err = svc.CreateRequest(student.ID, other.ID, "hello")
	assert.NoError(t, err)

	// 拒绝后可以重新申请，且是新记录
	_, err = svc.Reject(first.ID, mentor.ID)
	require.NoError(t, err)

	again, err := svc.CreateRequest(student.ID, mentor.ID, "again")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)

	// 旧的 rejected 记录作为历史保留
	sent, err := svc.ListSent(student.ID)
	require.NoError(t, err)
	assert.Len(t, sent, 3)
}

func TestAccept(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	// 非目标无权接受
	_, err = svc.Accept(created.ID, student.ID, model.TierBasic, "ok")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 非法等级
	_, err = svc.Accept(created.ID, mentor.ID, 0, "ok")
	assert.ErrorIs(t, err, util.ErrInvalidTier)
	_, err = svc.Accept(created.ID, mentor.ID, 4, "ok")
	assert.ErrorIs(t, err, util.ErrInvalidTier)

	view, err := svc.Accept(created.ID, mentor.ID, model.TierAdvanced, "欢迎")
	require.NoError(t, err)
	assert.Equal(t, model.MentorshipAccepted, view.Status)
	require.NotNil(t, view.Tier)
	assert.Equal(t, model.TierAdvanced, *view.Tier)
	require.NotNil(t, view.TargetMessage)
	assert.Equal(t, "欢迎", *view.TargetMessage)
	// 目标自己的视角里没有披露（联系方式本来就是他的）
	assert.Nil(t, view.TargetContact)

	// 申请人视角按等级披露：邮箱 + LinkedIn，没有电话
	requesterView, err := svc.Get(created.ID, student.ID)
	require.NoError(t, err)
	require.NotNil(t, requesterView.TargetContact)
	assert.Equal(t, mentor.Email, requesterView.TargetContact["email"])
	assert.Contains(t, requesterView.TargetContact, "linkedinUrl")
	assert.NotContains(t, requesterView.TargetContact, "phoneNumber")
}

func TestAcceptNotPending(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Accept(created.ID, mentor.ID, model.TierBasic, "ok")
	require.NoError(t, err)

	// 终态记录再接受/拒绝都是冲突，不是静默成功
	_, err = svc.Accept(created.ID, mentor.ID, model.TierPremium, "again")
	assert.ErrorIs(t, err, util.ErrRequestNotPending)
	_, err = svc.Reject(created.ID, mentor.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotPending)

	// 不存在的记录是404语义，区别于409
	_, err = svc.Accept("no-such-id", mentor.ID, model.TierBasic, "ok")
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
}

func TestAcceptFreesPendingSlot(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)
	_, err = svc.Accept(created.ID, mentor.ID, model.TierBasic, "ok")
	require.NoError(t, err)

	// 接受后 pending 槽位释放，同一对用户可以再次发起新申请
	_, err = svc.CreateRequest(student.ID, mentor.ID, "second round")
	assert.NoError(t, err)
}

func TestReject(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Reject(created.ID, student.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	view, err := svc.Reject(created.ID, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MentorshipRejected, view.Status)
	assert.Nil(t, view.Tier)

	// 拒绝后申请人视角同样没有任何联系方式
	requesterView, err := svc.Get(created.ID, student.ID)
	require.NoError(t, err)
	assert.Nil(t, requesterView.TargetContact)
}

func TestDelete(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")
	stranger := createUser(t, db, "stranger", model.Student)

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	// 无关第三方不可删除
	err = svc.Delete(created.ID, stranger.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// 申请人可删除 pending 记录
	require.NoError(t, svc.Delete(created.ID, student.ID))

	_, err = svc.Get(created.ID, student.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)

	// 已删除的 id 再删返回"不存在"
	err = svc.Delete(created.ID, student.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
}

func TestDeleteByTargetInTerminalState(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)
	_, err = svc.Accept(created.ID, mentor.ID, model.TierPremium, "ok")
	require.NoError(t, err)

	// 目标方也可以删除，任何状态下都允许
	require.NoError(t, svc.Delete(created.ID, mentor.ID))
	_, err = svc.Get(created.ID, mentor.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
}

func TestGetVisibility(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")
	stranger := createUser(t, db, "stranger", model.Student)

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Get(created.ID, student.ID)
	assert.NoError(t, err)
	_, err = svc.Get(created.ID, mentor.ID)
	assert.NoError(t, err)
	_, err = svc.Get(created.ID, stranger.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestListVisibilityAsymmetry(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)
	_, err = svc.Accept(created.ID, mentor.ID, model.TierPremium, "ok")
	require.NoError(t, err)

	// 发出方列表：按等级披露，Premium 含电话
	sent, err := svc.ListSent(student.ID)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.NotNil(t, sent[0].TargetContact)
	assert.Contains(t, sent[0].TargetContact, "phoneNumber")

	// 收到方列表：viewer 不是申请人，没有任何披露
	received, err := svc.ListReceived(mentor.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Nil(t, received[0].TargetContact)
	require.NotNil(t, received[0].Requester)
	assert.Equal(t, student.Name, received[0].Requester.Name)
}

func TestAcceptRejectRace(t *testing.T) {
	svc, db := newMentorshipService(t)
	student := createUser(t, db, "student", model.Student)
	mentor := createAlumnus(t, db, "mentor")

	created, err := svc.CreateRequest(student.ID, mentor.ID, "hello")
	require.NoError(t, err)

	// 模拟并发竞争中输掉的一方：状态已被另一个请求改走
	repo := repository.NewMentorshipRepository(db)
	applied, err := repo.Reject(created.ID)
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = repo.Accept(created.ID, model.TierBasic, "late")
	require.NoError(t, err)
	assert.False(t, applied)

	// 记录保持 rejected，没有部分写入
	got, err := repo.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MentorshipRejected, got.Status)
	assert.Nil(t, got.Tier)
	assert.Nil(t, got.TargetMessage)
	assert.Nil(t, got.PendingKey)
}
