package model

import "time"

// Event 校友活动表
type Event struct {
	BaseModel
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `gorm:"size:200" json:"location"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 表示不限人数
	ImageURL    string    `gorm:"size:255" json:"imageUrl"`
	CreatedBy   uint      `gorm:"index;not null" json:"createdBy"`
}

func (Event) TableName() string {
	return "events"
}

// EventRegistration 活动报名表，复合主键天然防止重复报名
type EventRegistration struct {
	EventID   uint      `gorm:"primaryKey" json:"eventId"`
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:false" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}
