package model

import "time"

// MentorshipRequestView 导师申请对外视图。
// Target 的联系方式只出现在 TargetContact 里，由披露解析器按
// (status, tier, viewer) 计算得出，未授权的字段整体不出现在响应中
type MentorshipRequestView struct {
	ID               string           `json:"id"`
	RequesterID      uint             `json:"requesterId"`
	TargetID         uint             `json:"targetId"`
	Status           MentorshipStatus `json:"status"`
	RequesterMessage string           `json:"requesterMessage"`
	TargetMessage    *string          `json:"targetMessage,omitempty"`
	Tier             *MentorshipTier  `json:"tier,omitempty"`
	Requester        *UserSummary     `json:"requester,omitempty"`
	Target           *UserSummary     `json:"target,omitempty"`
	TargetContact    map[string]string `json:"targetContact,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// EventView 活动视图，附带报名情况
type EventView struct {
	Event
	RegistrationCount int64 `json:"registrationCount"`
	Registered        bool  `json:"registered"`
}
