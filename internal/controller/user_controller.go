package controller

import (
	"alumni_connect_backend/internal/config"
	"alumni_connect_backend/internal/service"
	"alumni_connect_backend/internal/util"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserController 处理用户资料和管理后台的HTTP请求
type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
	Config         *config.Config
}

func NewUserController(userService *service.UserService, storageService *service.StorageService, cfg *config.Config) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
		Config:         cfg,
	}
}

// UpdateProfile godoc
// @Summary 更新个人资料
// @Description 更新姓名、毕业年份、公司、职位、简介及联系方式
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   request body service.ProfileUpdate true "资料"
// @Success 200 {object} util.Response "成功"
// @Router /api/user/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	profile, err := c.UserService.UpdateProfile(claims.UserID, &update)
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

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   avatar formData file true "头像文件"
// @Success 200 {object} util.Response "成功"
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, err := ctx.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "未找到上传文件")
		return
	}
	if file.Size > 5<<20 {
		util.BadRequest(ctx, "头像文件不能超过5MB")
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

	filename := fmt.Sprintf("avatars/%d_%d%s", claims.UserID, time.Now().Unix(), ext)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(claims.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// GetUsers godoc
// @Summary 获取用户列表
// @Description 管理后台用户列表，支持分页和筛选
// @Tags 用户管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Param   role query string false "角色筛选"
// @Param   search query string false "搜索关键词"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	role := ctx.Query("role")
	search := ctx.Query("search")

	users, total, err := c.UserService.ListUsers(role, search, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// SetUserDisabled godoc
// @Summary 禁用/启用用户
// @Tags 用户管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetUserDisabled(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "无效的用户ID")
		return
	}

	var req struct {
		Disabled bool `json:"disabled"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "无效的请求参数")
		return
	}

	if err := c.UserService.SetDisabled(uint(id), req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"disabled": req.Disabled})
}
