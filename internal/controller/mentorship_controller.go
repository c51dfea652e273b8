package controller

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/service"
	"alumni_connect_backend/internal/util"
	"alumni_connect_backend/pkg/monitoring"
	"errors"

	"github.com/gin-gonic/gin"
)

// MentorshipController 处理导师申请相关的HTTP请求
type MentorshipController struct {
	MentorshipService *service.MentorshipService
}

func NewMentorshipController(mentorshipService *service.MentorshipService) *MentorshipController {
	return &MentorshipController{
		MentorshipService: mentorshipService,
	}
}

// CreateMentorshipRequest 定义发起申请的请求结构
// swagger:model CreateMentorshipRequest
type CreateMentorshipRequest struct {
	TargetID uint   `json:"targetId" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// AcceptMentorshipRequest 定义接受申请的请求结构
// swagger:model AcceptMentorshipRequest
type AcceptMentorshipRequest struct {
	Tier    model.MentorshipTier `json:"tier" binding:"required"`
	Message string               `json:"message" binding:"required"`
}

// Create godoc
// @Summary 发起导师申请
// @Description 向某位校友发起导师申请；同一对用户同时只能有一条待处理申请
// @Tags 导师申请
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   request body CreateMentorshipRequest true "申请内容"
// @Success 201 {object} util.Response{data=model.MentorshipRequestView} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 409 {object} util.Response "已存在待处理申请"
// @Router /api/mentorship/requests [post]
func (c *MentorshipController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateMentorshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	view, err := c.MentorshipService.CreateRequest(claims.UserID, req.TargetID, req.Message)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	monitoring.MentorshipTransitions.WithLabelValues("created").Inc()
	util.Created(ctx, view)
}

// List godoc
// @Summary 我的导师申请列表
// @Description as=sent 为我发出的申请（联系方式按披露等级出现在这里），as=received 为我收到的申请
// @Tags 导师申请
// @Produce  json
// @Security ApiKeyAuth
// @Param   as query string true "sent 或 received"
// @Success 200 {object} util.Response{data=[]model.MentorshipRequestView} "成功"
// @Router /api/mentorship/requests [get]
func (c *MentorshipController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var views []*model.MentorshipRequestView
	var err error

	switch ctx.Query("as") {
	case "sent":
		views, err = c.MentorshipService.ListSent(claims.UserID)
	case "received":
		views, err = c.MentorshipService.ListReceived(claims.UserID)
	default:
		util.BadRequest(ctx, "as 参数必须是 sent 或 received")
		return
	}

	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// Get godoc
// @Summary 导师申请详情
// @Description 仅申请双方可见
// @Tags 导师申请
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "申请ID"
// @Success 200 {object} util.Response{data=model.MentorshipRequestView} "成功"
// @Failure 403 {object} util.Response "无权查看"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/mentorship/requests/{id} [get]
func (c *MentorshipController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.MentorshipService.Get(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// Accept godoc
// @Summary 接受导师申请
// @Description 申请目标本人接受申请并选择披露等级（1 仅邮箱 / 2 加LinkedIn / 3 加电话）
// @Tags 导师申请
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "申请ID"
// @Param   request body AcceptMentorshipRequest true "披露等级与留言"
// @Success 200 {object} util.Response{data=model.MentorshipRequestView} "成功"
// @Failure 403 {object} util.Response "非申请目标"
// @Failure 409 {object} util.Response "申请已不是待处理状态"
// @Router /api/mentorship/requests/{id}/accept [post]
func (c *MentorshipController) Accept(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AcceptMentorshipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	view, err := c.MentorshipService.Accept(ctx.Param("id"), claims.UserID, req.Tier, req.Message)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	monitoring.MentorshipTransitions.WithLabelValues("accepted").Inc()
	util.Success(ctx, view)
}

// Reject godoc
// @Summary 拒绝导师申请
// @Description 申请目标本人拒绝申请；申请人之后可以重新发起新申请
// @Tags 导师申请
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "申请ID"
// @Success 200 {object} util.Response{data=model.MentorshipRequestView} "成功"
// @Failure 403 {object} util.Response "非申请目标"
// @Failure 409 {object} util.Response "申请已不是待处理状态"
// @Router /api/mentorship/requests/{id}/reject [put]
func (c *MentorshipController) Reject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.MentorshipService.Reject(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}

	monitoring.MentorshipTransitions.WithLabelValues("rejected").Inc()
	util.Success(ctx, view)
}

// Delete godoc
// @Summary 删除导师申请
// @Description 申请双方任意一方都可删除，任何状态下都允许
// @Tags 导师申请
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "申请ID"
// @Success 204 "删除成功"
// @Failure 403 {object} util.Response "非申请相关方"
// @Failure 404 {object} util.Response "申请不存在"
// @Router /api/mentorship/requests/{id} [delete]
func (c *MentorshipController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.MentorshipService.Delete(ctx.Param("id"), claims.UserID); err != nil {
		c.mapError(ctx, err)
		return
	}

	monitoring.MentorshipTransitions.WithLabelValues("deleted").Inc()
	util.NoContent(ctx)
}

// mapError 统一错误映射：校验 400 / 冲突 409 / 越权 403 / 不存在 404
func (c *MentorshipController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSelfRequest),
		errors.Is(err, util.ErrTargetNotAlumni),
		errors.Is(err, util.ErrEmptyMessage),
		errors.Is(err, util.ErrMessageTooLong),
		errors.Is(err, util.ErrInvalidTier):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrDuplicateRequest),
		errors.Is(err, util.ErrRequestNotPending):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrRequestNotFound):
		util.NotFound(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
