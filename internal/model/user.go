package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Alumni  UserRole = "alumni"
	Faculty UserRole = "faculty"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"-"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:16;default:'student';index" json:"role"`

	// 联系方式不参与默认序列化：Email 只出现在本人资料和披露结果里，
	// LinkedIn 和电话仅按导师申请的披露等级对申请人可见
	LinkedinURL *string `gorm:"size:255" json:"-"`
	PhoneNumber *string `gorm:"size:30" json:"-"`

	// 校友档案
	Batch       int    `gorm:"default:0" json:"batch"` // 毕业年份
	Company     string `gorm:"size:100" json:"company"`
	Designation string `gorm:"size:100" json:"designation"`
	Bio         string `gorm:"size:500" json:"bio"`
	Avatar      string `gorm:"size:255" json:"avatar"`

	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"autoCreateTime" json:"lastLogin"`
	LastSeen  time.Time `gorm:"autoCreateTime" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary 对外展示的用户信息，不携带任何联系方式
type UserSummary struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	Batch       int      `json:"batch,omitempty"`
	Company     string   `json:"company,omitempty"`
	Designation string   `json:"designation,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
}

func NewUserSummary(u *User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Role:        u.Role,
		Batch:       u.Batch,
		Company:     u.Company,
		Designation: u.Designation,
		Avatar:      u.Avatar,
	}
}
