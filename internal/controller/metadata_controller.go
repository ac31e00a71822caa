package controller

import (
	"strconv"

	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// MetadataController 学科/分类/错误原因字典维护
type MetadataController struct {
	MetadataService *service.MetadataService
}

func NewMetadataController(metadataService *service.MetadataService) *MetadataController {
	return &MetadataController{MetadataService: metadataService}
}

// ListSubjects godoc
// @Summary 学科列表
// @Tags 元数据
// @Produce json
// @Param activeOnly query bool false "只看启用中的学科" default(false)
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/subjects [get]
func (c *MetadataController) ListSubjects(ctx *gin.Context) {
	offset, limit := parsePagination(ctx)
	activeOnly, _ := strconv.ParseBool(ctx.DefaultQuery("activeOnly", "false"))

	subjects, total, err := c.MetadataService.ListSubjects(activeOnly, offset, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": subjects})
}

// CreateSubject godoc
// @Summary 新增学科
// @Tags 元数据
// @Accept json
// @Produce json
// @Param request body service.CreateSubjectInput true "学科信息"
// @Success 201 {object} util.Response{data=model.Subject} "创建成功"
// @Failure 409 {object} util.Response "编码或名称重复"
// @Router /api/subjects [post]
func (c *MetadataController) CreateSubject(ctx *gin.Context) {
	var input service.CreateSubjectInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "code and name are required")
		return
	}

	subject, err := c.MetadataService.CreateSubject(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, subject)
}

// ListCategories godoc
// @Summary 错题分类列表
// @Tags 元数据
// @Produce json
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/wrong-question-categories [get]
func (c *MetadataController) ListCategories(ctx *gin.Context) {
	offset, limit := parsePagination(ctx)
	categories, total, err := c.MetadataService.ListCategories(offset, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": categories})
}

// CreateCategory godoc
// @Summary 新增错题分类
// @Tags 元数据
// @Accept json
// @Produce json
// @Param request body service.CreateCategoryInput true "分类信息"
// @Success 201 {object} util.Response{data=model.WrongQuestionCategory} "创建成功"
// @Failure 409 {object} util.Response "名称重复"
// @Router /api/wrong-question-categories [post]
func (c *MetadataController) CreateCategory(ctx *gin.Context) {
	var input service.CreateCategoryInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "name is required")
		return
	}

	category, err := c.MetadataService.CreateCategory(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// DeleteCategory godoc
// @Summary 删除错题分类
// @Description 关联错题与错误原因保留，仅清空其分类引用
// @Tags 元数据
// @Param id path int true "分类ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "分类不存在"
// @Router /api/wrong-question-categories/{id} [delete]
func (c *MetadataController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.MetadataService.DeleteCategory(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// ListErrorReasons godoc
// @Summary 错误原因列表
// @Tags 元数据
// @Produce json
// @Param categoryId query int false "按分类筛选"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/error-reasons [get]
func (c *MetadataController) ListErrorReasons(ctx *gin.Context) {
	offset, limit := parsePagination(ctx)
	categoryID := parseOptionalUintQuery(ctx, "categoryId")

	reasons, total, err := c.MetadataService.ListErrorReasons(categoryID, offset, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": reasons})
}

// CreateErrorReason godoc
// @Summary 新增错误原因
// @Description 名称在所属分类内唯一
// @Tags 元数据
// @Accept json
// @Produce json
// @Param request body service.CreateErrorReasonInput true "原因信息"
// @Success 201 {object} util.Response{data=model.ErrorReason} "创建成功"
// @Failure 404 {object} util.Response "分类不存在"
// @Failure 409 {object} util.Response "同分类下名称重复"
// @Router /api/error-reasons [post]
func (c *MetadataController) CreateErrorReason(ctx *gin.Context) {
	var input service.CreateErrorReasonInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "name is required")
		return
	}

	reason, err := c.MetadataService.CreateErrorReason(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, reason)
}

// DeleteErrorReason godoc
// @Summary 删除错误原因
// @Description 同步清理错题上的原因链接
// @Tags 元数据
// @Param id path int true "原因ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "原因不存在"
// @Router /api/error-reasons/{id} [delete]
func (c *MetadataController) DeleteErrorReason(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.MetadataService.DeleteErrorReason(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// parseOptionalUintQuery 解析可选的数字查询参数，缺省或非法时返回 nil
func parseOptionalUintQuery(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(value)
	return &v
}
