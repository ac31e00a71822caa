package controller

import (
	"io"

	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// 上传试卷图片的大小上限
const maxUploadSize = 20 << 20

// OCRController 试卷上传识别入口
type OCRController struct {
	PaperService *service.PaperService
}

func NewOCRController(paperService *service.PaperService) *OCRController {
	return &OCRController{PaperService: paperService}
}

// ExtractQuestions godoc
// @Summary 上传试卷并识别题目
// @Description 上传整页试卷图片，OCR 拆分题目并裁剪配图；识别失败时不落库
// @Tags OCR
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "试卷图片"
// @Param title formData string false "试卷标题，缺省用文件名"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "缺少文件"
// @Failure 503 {object} util.Response "识别服务不可用"
// @Router /api/ocr/extract [post]
func (c *OCRController) ExtractQuestions(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > maxUploadSize {
		util.BadRequest(ctx, "file too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	paper, items, err := c.PaperService.IngestPaper(ctx.Request.Context(), service.IngestPaperInput{
		Title:       ctx.PostForm("title"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		ImageData:   imageData,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"paper": paper,
		"items": items,
	})
}

// GetPaper godoc
// @Summary 试卷详情
// @Description 试卷及其题目与裁剪出的配图
// @Tags OCR
// @Produce json
// @Param id path int true "试卷ID"
// @Success 200 {object} util.Response{data=model.Paper} "成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/papers/{id} [get]
func (c *OCRController) GetPaper(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	paper, err := c.PaperService.GetPaper(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, paper)
}

// DeletePaper godoc
// @Summary 删除试卷
// @Description 级联删除题目、配图与变式题
// @Tags OCR
// @Param id path int true "试卷ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "试卷不存在"
// @Router /api/papers/{id} [delete]
func (c *OCRController) DeletePaper(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.PaperService.DeletePaper(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}
