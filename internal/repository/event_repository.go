package repository

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(event *model.Event) error {
	return r.DB.Create(event).Error
}

func (r *EventRepository) FindByID(id uint) (*model.Event, error) {
	var event model.Event
	err := r.DB.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Update(event *model.Event) error {
	return r.DB.Save(event).Error
}

func (r *EventRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventRegistration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

// List 活动列表，scope = upcoming / past / 空（全部）
func (r *EventRepository) List(scope string, limit, offset int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	db := r.DB.Model(&model.Event{})
	now := time.Now()
	switch scope {
	case "upcoming":
		db = db.Where("start_time >= ?", now).Order("start_time ASC")
	case "past":
		db = db.Where("start_time < ?", now).Order("start_time DESC")
	default:
		db = db.Order("start_time DESC")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// Register 报名。人数上限检查和写入在同一事务中，行锁防止超卖
func (r *EventRepository) Register(eventID, userID uint, capacity int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if capacity > 0 {
			var count int64
			if err := tx.Model(&model.EventRegistration{}).
				Where("event_id = ?", eventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(capacity) {
				return util.ErrEventFull
			}
		}

		err := tx.Create(&model.EventRegistration{EventID: eventID, UserID: userID}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrAlreadyRegistered
		}
		return err
	})
}

func (r *EventRepository) Unregister(eventID, userID uint) error {
	res := r.DB.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&model.EventRegistration{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrNotRegistered
	}
	return nil
}

func (r *EventRepository) ListRegistrations(eventID uint) ([]model.EventRegistration, error) {
	var regs []model.EventRegistration
	err := r.DB.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (r *EventRepository) IsRegistered(eventID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}
