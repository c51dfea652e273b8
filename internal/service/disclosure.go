package service

import (
	"alumni_connect_backend/internal/model"
)

// contactField 联系方式字段：名称加取值函数。
// 披露集合是对这个有序列表按 tier 截断，
// Premium ⊇ Advanced ⊇ Basic 的嵌套关系由列表顺序保证，不靠约定维护
type contactField struct {
	name  string
	value func(u *model.User) (string, bool)
}

var contactFields = []contactField{
	{"email", func(u *model.User) (string, bool) {
		return u.Email, u.Email != ""
	}},
	{"linkedinUrl", func(u *model.User) (string, bool) {
		if u.LinkedinURL == nil || *u.LinkedinURL == "" {
			return "", false
		}
		return *u.LinkedinURL, true
	}},
	{"phoneNumber", func(u *model.User) (string, bool) {
		if u.PhoneNumber == nil || *u.PhoneNumber == "" {
			return "", false
		}
		return *u.PhoneNumber, true
	}},
}

// ResolveContact 计算 viewer 对申请目标联系方式的可见子集。
//
// 规则：只有 status = accepted 且 viewer 是申请人本人时才披露，
// tier = 1 仅邮箱，tier = 2 加 LinkedIn，tier = 3 加电话。
// pending / rejected 一律返回空。每次读取都重新求值，结果不缓存。
// 返回空 map 时序列化端整体省略该字段，不存在"打码"后下发的情况
func ResolveContact(req *model.MentorshipRequest, viewerID uint, target *model.User) map[string]string {
	if req == nil || target == nil {
		return nil
	}
	if req.Status != model.MentorshipAccepted || req.Tier == nil {
		return nil
	}
	if viewerID != req.RequesterID {
		return nil
	}
	if target.ID != req.TargetID {
		return nil
	}

	n := int(*req.Tier)
	if n < 0 {
		return nil
	}
	if n > len(contactFields) {
		n = len(contactFields)
	}

	out := make(map[string]string, n)
	for _, f := range contactFields[:n] {
		if v, ok := f.value(target); ok {
			out[f.name] = v
		}
	}
	return out
}
