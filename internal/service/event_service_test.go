package service

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/repository"
	"alumni_connect_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventService(t *testing.T) (*EventService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewEventService(repository.NewEventRepository(db)), db
}

func upcomingEventInput(title string, capacity int) *EventInput {
	start := time.Now().Add(48 * time.Hour)
	return &EventInput{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Location:  "校友之家",
		Capacity:  capacity,
	}
}

func TestEventCreateValidation(t *testing.T) {
	svc, db := newEventService(t)
	admin := createUser(t, db, "admin", model.Admin)

	_, err := svc.Create(&EventInput{Title: "  ", StartTime: time.Now()}, admin.ID)
	assert.Error(t, err)

	input := upcomingEventInput("返校日", 0)
	input.EndTime = input.StartTime.Add(-time.Hour)
	_, err = svc.Create(input, admin.ID)
	assert.Error(t, err)

	input = upcomingEventInput("返校日", -1)
	_, err = svc.Create(input, admin.ID)
	assert.Error(t, err)

	event, err := svc.Create(upcomingEventInput("返校日", 0), admin.ID)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, admin.ID, event.CreatedBy)
}

func TestEventRegisterLifecycle(t *testing.T) {
	svc, db := newEventService(t)
	admin := createUser(t, db, "admin", model.Admin)
	alice := createUser(t, db, "alice", model.Student)
	bob := createUser(t, db, "bob", model.Student)
	carol := createUser(t, db, "carol", model.Alumni)

	event, err := svc.Create(upcomingEventInput("年度聚会", 2), admin.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Register(event.ID, alice.ID))

	// 重复报名
	err = svc.Register(event.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyRegistered)

	require.NoError(t, svc.Register(event.ID, bob.ID))

	// 人数已满
	err = svc.Register(event.ID, carol.ID)
	assert.ErrorIs(t, err, util.ErrEventFull)

	// 取消报名后释放名额
	require.NoError(t, svc.Unregister(event.ID, bob.ID))
	require.NoError(t, svc.Register(event.ID, carol.ID))

	// 未报名者取消报名
	err = svc.Unregister(event.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrNotRegistered)

	// 报名视角
	view, err := svc.Get(event.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, view.Registered)
	assert.Equal(t, int64(2), view.RegistrationCount)

	view, err = svc.Get(event.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, view.Registered)
}

func TestEventRegisterPastEvent(t *testing.T) {
	svc, db := newEventService(t)
	admin := createUser(t, db, "admin", model.Admin)
	alice := createUser(t, db, "alice", model.Student)

	past := &model.Event{
		Title:     "往期活动",
		StartTime: time.Now().Add(-24 * time.Hour),
		EndTime:   time.Now().Add(-22 * time.Hour),
		CreatedBy: admin.ID,
	}
	require.NoError(t, db.Create(past).Error)

	err := svc.Register(past.ID, alice.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, util.ErrEventNotFound)
}

func TestEventListScopes(t *testing.T) {
	svc, db := newEventService(t)
	admin := createUser(t, db, "admin", model.Admin)

	_, err := svc.Create(upcomingEventInput("将来的活动", 0), admin.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Event{
		Title:     "过去的活动",
		StartTime: time.Now().Add(-24 * time.Hour),
		CreatedBy: admin.ID,
	}).Error)

	upcoming, total, err := svc.List("upcoming", 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "将来的活动", upcoming[0].Title)

	past, total, err := svc.List("past", 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, past, 1)
	assert.Equal(t, "过去的活动", past[0].Title)

	_, total, err = svc.List("", 1, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestEventDeleteCascadesRegistrations(t *testing.T) {
	svc, db := newEventService(t)
	admin := createUser(t, db, "admin", model.Admin)
	alice := createUser(t, db, "alice", model.Student)

	event, err := svc.Create(upcomingEventInput("清理测试", 0), admin.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Register(event.ID, alice.ID))

	require.NoError(t, svc.Delete(event.ID))

	_, err = svc.Get(event.ID, 0)
	assert.ErrorIs(t, err, util.ErrEventNotFound)

	var count int64
	require.NoError(t, db.Model(&model.EventRegistration{}).
		Where("event_id = ?", event.ID).Count(&count).Error)
	assert.Zero(t, count)
}
