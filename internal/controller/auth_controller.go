package controller

import (
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// StudentLoginRequest 学生登录请求
// swagger:model StudentLoginRequest
type StudentLoginRequest struct {
	Name      string `json:"name" binding:"required"`
	StudentNo string `json:"studentNo"`
	Grade     string `json:"grade"`
}

// StudentLogin godoc
// @Summary 学生登录
// @Description 按姓名解析学生身份，首次登录自动建档；学号用于重名消歧
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body StudentLoginRequest true "登录信息"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 401 {object} util.Response "学号校验失败"
// @Failure 409 {object} util.Response "重名无法消歧"
// @Router /api/auth/student-login [post]
func (c *AuthController) StudentLogin(ctx *gin.Context) {
	var req StudentLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "name is required")
		return
	}

	result, err := c.AuthService.StudentLogin(service.StudentLoginInput{
		Name:      req.Name,
		StudentNo: req.StudentNo,
		Grade:     req.Grade,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
