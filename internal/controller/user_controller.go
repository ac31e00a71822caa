package controller

import (
	"encoding/json"
	"io"
	"strconv"

	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// UserController 用户与家长-学生关系管理
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// CreateUser godoc
// @Summary 创建用户
// @Description 创建用户；role=student 时必须携带 studentProfile
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param request body service.CreateUserInput true "用户信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 409 {object} util.Response "邮箱或手机号已存在"
// @Router /api/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var input service.CreateUserInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "invalid request body: "+err.Error())
		return
	}

	user, err := c.UserService.CreateUser(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// ListUsers godoc
// @Summary 用户列表
// @Description 按角色/状态/关键词筛选用户
// @Tags 用户管理
// @Produce json
// @Param role query string false "角色筛选"
// @Param status query string false "状态筛选"
// @Param keyword query string false "姓名/邮箱/手机号关键词"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	offset, limit := parsePagination(ctx)
	users, total, err := c.UserService.ListUsers(repository.UserFilter{
		Role:    ctx.Query("role"),
		Status:  ctx.Query("status"),
		Keyword: ctx.Query("keyword"),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": users})
}

// GetUser godoc
// @Summary 用户详情
// @Tags 用户管理
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	user, err := c.UserService.GetUser(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary 更新用户
// @Description 部分更新；学生角色的档案随角色变化同步增删
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param id path int true "用户ID"
// @Param request body service.UpdateUserInput true "更新内容"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 409 {object} util.Response "邮箱或手机号已存在"
// @Router /api/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "cannot read request body")
		return
	}

	var input service.UpdateUserInput
	if err := json.Unmarshal(body, &input); err != nil {
		util.BadRequest(ctx, "invalid request body: "+err.Error())
		return
	}

	// 显式提交 studentProfile: null 与未提交是不同语义
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		_, input.HasProfileUpdate = fields["studentProfile"]
	}

	user, err := c.UserService.UpdateUser(id, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// CreateParentStudentLink godoc
// @Summary 绑定家长与学生
// @Tags 用户管理
// @Accept json
// @Produce json
// @Param request body service.CreateLinkInput true "绑定信息"
// @Success 201 {object} util.Response{data=model.ParentStudentLink} "创建成功"
// @Failure 400 {object} util.Response "角色不符或参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Failure 409 {object} util.Response "绑定已存在"
// @Router /api/parent-student-links [post]
func (c *UserController) CreateParentStudentLink(ctx *gin.Context) {
	var input service.CreateLinkInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "parentId and studentId are required")
		return
	}

	link, err := c.UserService.CreateParentStudentLink(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, link)
}

// DeleteParentStudentLink godoc
// @Summary 解绑家长与学生
// @Tags 用户管理
// @Param id path int true "绑定ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "绑定不存在"
// @Router /api/parent-student-links/{id} [delete]
func (c *UserController) DeleteParentStudentLink(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.UserService.DeleteParentStudentLink(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListStudentsByParent godoc
// @Summary 家长名下的学生列表
// @Tags 用户管理
// @Produce json
// @Param id path int true "家长用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "用户不是家长"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/parents/{id}/students [get]
func (c *UserController) ListStudentsByParent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	links, err := c.UserService.ListStudentsByParent(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, links)
}

// ListParentsByStudent godoc
// @Summary 学生绑定的家长列表
// @Tags 用户管理
// @Produce json
// @Param id path int true "学生用户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "用户不是学生"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/students/{id}/parents [get]
func (c *UserController) ListParentsByStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	links, err := c.UserService.ListParentsByStudent(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, links)
}

// parseIDParam 解析路径中的数字 ID，非法时直接写 400 响应
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// parsePagination 解析 offset/limit 分页参数，limit 上限 100
func parsePagination(ctx *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
