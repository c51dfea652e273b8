package controller

import (
	"alumni_connect_backend/internal/service"
	"alumni_connect_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DirectoryController 校友目录。目录响应里永远没有联系方式，
// 联系方式只通过导师申请的披露接口下发
type DirectoryController struct {
	DirectoryService *service.DirectoryService
}

func NewDirectoryController(directoryService *service.DirectoryService) *DirectoryController {
	return &DirectoryController{DirectoryService: directoryService}
}

// ListAlumni godoc
// @Summary 校友目录
// @Description 按姓名/公司/职位搜索，支持毕业年份筛选和分页
// @Tags 校友目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   search query string false "搜索关键词"
// @Param   batch query int false "毕业年份"
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/alumni [get]
func (c *DirectoryController) ListAlumni(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	batch, _ := strconv.Atoi(ctx.DefaultQuery("batch", "0"))
	search := ctx.Query("search")

	alumni, total, err := c.DirectoryService.ListAlumni(search, batch, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  alumni,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetAlumnus godoc
// @Summary 校友详情
// @Description 公开档案，不含联系方式
// @Tags 校友目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "校友ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "校友不存在"
// @Router /api/alumni/{id} [get]
func (c *DirectoryController) GetAlumnus(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的校友ID")
		return
	}

	profile, err := c.DirectoryService.GetAlumnus(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
