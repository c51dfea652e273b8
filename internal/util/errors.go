package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrPermissionDenied = errors.New("无权执行该操作")

	// 导师申请校验类错误（HTTP 400）
	ErrSelfRequest     = errors.New("不能向自己发起导师申请")
	ErrTargetNotAlumni = errors.New("申请对象必须是校友")
	ErrEmptyMessage    = errors.New("申请留言不能为空")
	ErrMessageTooLong  = errors.New("留言长度不能超过200字符")
	ErrInvalidTier     = errors.New("无效的披露等级")

	// 导师申请冲突类错误（HTTP 409）
	ErrDuplicateRequest  = errors.New("已存在待处理的导师申请")
	ErrRequestNotPending = errors.New("申请已不是待处理状态")

	ErrRequestNotFound = errors.New("导师申请不存在")

	// 活动相关
	ErrEventNotFound     = errors.New("活动不存在")
	ErrEventFull         = errors.New("活动报名人数已满")
	ErrAlreadyRegistered = errors.New("已报名该活动")
	ErrNotRegistered     = errors.New("未报名该活动")

	ErrTestimonialNotFound = errors.New("感言不存在")
)
