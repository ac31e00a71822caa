package controller

import (
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// VariantController 变式题生成
type VariantController struct {
	VariantService *service.VariantService
}

func NewVariantController(variantService *service.VariantService) *VariantController {
	return &VariantController{VariantService: variantService}
}

// GenerateVariants godoc
// @Summary 生成变式题
// @Description 根据原题生成同考点变式题；携带 questionId 时生成结果落库
// @Tags 变式题
// @Accept json
// @Produce json
// @Param request body service.GenerateVariantsInput true "生成参数"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 503 {object} util.Response "生成服务不可用"
// @Router /api/variants/generate [post]
func (c *VariantController) GenerateVariants(ctx *gin.Context) {
	var input service.GenerateVariantsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "sourceText is required")
		return
	}

	items, err := c.VariantService.GenerateVariants(ctx.Request.Context(), input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": items})
}

// ListByQuestion godoc
// @Summary 题目的变式题列表
// @Tags 变式题
// @Produce json
// @Param id path int true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/questions/{id}/variants [get]
func (c *VariantController) ListByQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	variants, err := c.VariantService.ListByQuestion(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, variants)
}
