package controller

import (
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ExportController 练习卷 PDF 导出
type ExportController struct {
	ExportService *service.ExportService
}

func NewExportController(exportService *service.ExportService) *ExportController {
	return &ExportController{ExportService: exportService}
}

// CreateExport godoc
// @Summary 导出练习卷
// @Description 同步生成 PDF 并上传存储；响应保留 jobId/status/downloadUrl 的任务形态
// @Tags 导出
// @Accept json
// @Produce json
// @Param request body service.CreateExportInput true "导出内容"
// @Success 200 {object} util.Response{data=service.ExportResult} "成功"
// @Failure 400 {object} util.Response "参数错误"
// @Router /api/export [post]
func (c *ExportController) CreateExport(ctx *gin.Context) {
	var input service.CreateExportInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "title and originalText are required")
		return
	}

	result, err := c.ExportService.CreateExport(ctx.Request.Context(), input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetExport godoc
// @Summary 导出任务详情
// @Tags 导出
// @Produce json
// @Param jobId path string true "任务ID"
// @Success 200 {object} util.Response{data=model.Export} "成功"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/export/{jobId} [get]
func (c *ExportController) GetExport(ctx *gin.Context) {
	jobID := ctx.Param("jobId")
	if jobID == "" {
		util.BadRequest(ctx, "invalid jobId")
		return
	}
	export, err := c.ExportService.GetExport(jobID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, export)
}
