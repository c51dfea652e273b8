package controller

import (
	"alumni_connect_backend/internal/service"
	"alumni_connect_backend/internal/util"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type EventController struct {
	EventService   *service.EventService
	StorageService *service.StorageService
}

func NewEventController(eventService *service.EventService, storageService *service.StorageService) *EventController {
	return &EventController{
		EventService:   eventService,
		StorageService: storageService,
	}
}

// ListEvents godoc
// @Summary 活动列表
// @Description scope = upcoming / past，缺省为全部
// @Tags 活动
// @Produce  json
// @Param   scope query string false "upcoming 或 past"
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	scope := ctx.Query("scope")

	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	events, total, err := c.EventService.List(scope, page, limit, viewerID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  events,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetEvent godoc
// @Summary 活动详情
// @Tags 活动
// @Produce  json
// @Param   id path int true "活动ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "活动不存在"
// @Router /api/events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	var viewerID uint
	if claims := util.GetUserFromContext(ctx); claims != nil {
		viewerID = claims.UserID
	}

	view, err := c.EventService.Get(uint(id), viewerID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// CreateEvent godoc
// @Summary 创建活动
// @Tags 活动管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   request body service.EventInput true "活动内容"
// @Success 201 {object} util.Response "创建成功"
// @Router /api/admin/events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	event, err := c.EventService.Create(&input, claims.UserID)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Created(ctx, event)
}

// UpdateEvent godoc
// @Summary 更新活动
// @Tags 活动管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Param   request body service.EventInput true "活动内容"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	var input service.EventInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	event, err := c.EventService.Update(uint(id), &input)
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, event)
}

// DeleteEvent godoc
// @Summary 删除活动
// @Tags 活动管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Success 204 "删除成功"
// @Router /api/admin/events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	if err := c.EventService.Delete(uint(id)); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// UploadEventImage godoc
// @Summary 上传活动图片
// @Tags 活动管理
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   image formData file true "图片文件"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/events/image [post]
func (c *EventController) UploadEventImage(ctx *gin.Context) {
	file, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "未找到上传文件")
		return
	}
	if file.Size > 10<<20 {
		util.BadRequest(ctx, "图片文件不能超过10MB")
		return
	}

	ext := filepath.Ext(file.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		util.BadRequest(ctx, "仅支持 jpg/png/webp 格式")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	filename := fmt.Sprintf("events/%d%s", time.Now().UnixNano(), ext)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"imageUrl": url})
}

// Register godoc
// @Summary 报名活动
// @Tags 活动
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Success 200 {object} util.Response "成功"
// @Failure 409 {object} util.Response "重复报名或人数已满"
// @Router /api/events/{id}/register [post]
func (c *EventController) Register(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	if err := c.EventService.Register(uint(id), claims.UserID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"registered": true})
}

// Unregister godoc
// @Summary 取消报名
// @Tags 活动
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/events/{id}/register [delete]
func (c *EventController) Unregister(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	if err := c.EventService.Unregister(uint(id), claims.UserID); err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"registered": false})
}

// ListRegistrations godoc
// @Summary 活动报名名单
// @Tags 活动管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "活动ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/events/{id}/registrations [get]
func (c *EventController) ListRegistrations(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的活动ID")
		return
	}

	regs, err := c.EventService.ListRegistrations(uint(id))
	if err != nil {
		c.mapError(ctx, err)
		return
	}
	util.Success(ctx, regs)
}

func (c *EventController) mapError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEventNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrEventFull),
		errors.Is(err, util.ErrAlreadyRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrNotRegistered):
		util.BadRequest(ctx, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}
