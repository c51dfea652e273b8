package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorshipStatus string

const (
	MentorshipPending  MentorshipStatus = "pending"
	MentorshipAccepted MentorshipStatus = "accepted"
	MentorshipRejected MentorshipStatus = "rejected"
)

// MentorshipTier 联系方式披露等级，严格嵌套：3 ⊇ 2 ⊇ 1
type MentorshipTier int

const (
	TierBasic    MentorshipTier = 1 // 仅邮箱
	TierAdvanced MentorshipTier = 2 // 邮箱 + LinkedIn
	TierPremium  MentorshipTier = 3 // 邮箱 + LinkedIn + 电话
)

func (t MentorshipTier) Valid() bool {
	return t >= TierBasic && t <= TierPremium
}

// MentorshipRequest 导师申请表
//
// 生命周期：pending -> accepted / rejected，两个终态只能被删除。
// 被拒绝后重新申请是新建一条记录，旧记录作为历史保留。
// 删除是硬删除，这里不用软删除基类：残留的 pending_key 会破坏唯一约束。
type MentorshipRequest struct {
	ID          string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	RequesterID uint   `gorm:"index:idx_mentorship_pair;not null" json:"requesterId"`
	Requester   User   `gorm:"foreignKey:RequesterID;references:ID;constraint:false" json:"-"`
	TargetID    uint   `gorm:"index:idx_mentorship_pair;not null" json:"targetId"`
	Target      User   `gorm:"foreignKey:TargetID;references:ID;constraint:false" json:"-"`

	Status MentorshipStatus `gorm:"size:16;default:'pending';index" json:"status"`

	RequesterMessage string          `gorm:"size:200;not null" json:"requesterMessage"`
	TargetMessage    *string         `gorm:"size:200" json:"targetMessage,omitempty"`
	Tier             *MentorshipTier `gorm:"type:tinyint" json:"tier,omitempty"`

	// pending 状态下为 "<requesterId>:<targetId>"，其余状态为 NULL。
	// 唯一索引保证同一对用户最多只有一条待处理申请（MySQL 的唯一索引允许多个 NULL），
	// 并发重复创建由数据库层拦截，而不是先查后写
	PendingKey *string `gorm:"size:64;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (MentorshipRequest) TableName() string {
	return "mentorship_requests"
}

func (m *MentorshipRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// PendingPairKey 生成 pending 唯一约束的键值
func PendingPairKey(requesterID, targetID uint) string {
	return fmt.Sprintf("%d:%d", requesterID, targetID)
}
