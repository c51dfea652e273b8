package controller

import (
	"alumni_connect_backend/internal/model"
	"alumni_connect_backend/internal/service"
	"alumni_connect_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TestimonialController struct {
	TestimonialService *service.TestimonialService
}

func NewTestimonialController(testimonialService *service.TestimonialService) *TestimonialController {
	return &TestimonialController{TestimonialService: testimonialService}
}

// SubmitRequest 定义感言提交请求结构
// swagger:model SubmitTestimonialRequest
type SubmitTestimonialRequest struct {
	Content string `json:"content" binding:"required"`
}

// List godoc
// @Summary 感言列表
// @Description 公开接口，只返回已审核通过的感言
// @Tags 感言
// @Produce  json
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/testimonials [get]
func (c *TestimonialController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, total, err := c.TestimonialService.ListApproved(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Submit godoc
// @Summary 提交感言
// @Description 提交后需管理员审核通过才对外展示
// @Tags 感言
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   request body SubmitTestimonialRequest true "感言内容"
// @Success 201 {object} util.Response "提交成功"
// @Router /api/testimonials [post]
func (c *TestimonialController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitTestimonialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	t, err := c.TestimonialService.Submit(claims.UserID, req.Content)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, t)
}

// ListAll godoc
// @Summary 感言管理列表
// @Description 管理后台列表，含未审核感言
// @Tags 感言管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/testimonials [get]
func (c *TestimonialController) ListAll(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	list, total, err := c.TestimonialService.ListAll(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  list,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Approve godoc
// @Summary 审核通过感言
// @Tags 感言管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "感言ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/testimonials/{id}/approve [put]
func (c *TestimonialController) Approve(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的感言ID")
		return
	}

	if err := c.TestimonialService.Approve(uint(id)); err != nil {
		if errors.Is(err, util.ErrTestimonialNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"approved": true})
}

// Delete godoc
// @Summary 删除感言
// @Description 本人或管理员可删除
// @Tags 感言
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "感言ID"
// @Success 204 "删除成功"
// @Router /api/testimonials/{id} [delete]
func (c *TestimonialController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的感言ID")
		return
	}

	isAdmin := string(claims.Role) == string(model.Admin)
	if err := c.TestimonialService.Delete(uint(id), claims.UserID, isAdmin); err != nil {
		switch {
		case errors.Is(err, util.ErrTestimonialNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.NoContent(ctx)
}
