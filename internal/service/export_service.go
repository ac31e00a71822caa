package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"
	"wrongbook_backend/pkg/monitoring"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ExportService 把原题和变式题排版成 PDF 练习卷。
// 生成是同步的，但响应保留 job_id/status/download_url 的任务形态。
type ExportService struct {
	exports *repository.ExportRepository
	storage *StorageService
}

func NewExportService(exports *repository.ExportRepository, storage *StorageService) *ExportService {
	return &ExportService{exports: exports, storage: storage}
}

type CreateExportInput struct {
	Title         string   `json:"title" binding:"required"`
	OriginalText  string   `json:"originalText" binding:"required"`
	Variants      []string `json:"variants"`
	IncludeImages bool     `json:"includeImages"`
}

type ExportResult struct {
	JobID       string `json:"jobId"`
	Status      string `json:"status"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

func (s *ExportService) CreateExport(ctx context.Context, input CreateExportInput) (*ExportResult, error) {
	jobID := uuid.NewString()

	variantsJSON, err := json.Marshal(input.Variants)
	if err != nil {
		return nil, err
	}
	record := &model.Export{
		JobID:         jobID,
		Title:         input.Title,
		OriginalText:  input.OriginalText,
		VariantsJSON:  string(variantsJSON),
		IncludeImages: input.IncludeImages,
		Format:        "pdf",
	}

	downloadURL, genErr := s.buildAndUpload(ctx, jobID, input)
	if genErr != nil {
		logger.Log.Error("Export failed", zap.String("jobId", jobID), zap.Error(genErr))
		monitoring.ExportCounter.WithLabelValues("failed").Inc()
		record.Status = model.ExportFailed
		record.ErrorMessage = genErr.Error()
		if err := s.exports.Create(record); err != nil {
			return nil, err
		}
		return &ExportResult{JobID: jobID, Status: string(model.ExportFailed)}, nil
	}

	monitoring.ExportCounter.WithLabelValues("completed").Inc()
	record.Status = model.ExportCompleted
	record.DownloadURL = downloadURL
	if err := s.exports.Create(record); err != nil {
		return nil, err
	}

	logger.Log.Info("Export completed", zap.String("jobId", jobID), zap.String("url", downloadURL))
	return &ExportResult{
		JobID:       jobID,
		Status:      string(model.ExportCompleted),
		DownloadURL: downloadURL,
	}, nil
}

func (s *ExportService) GetExport(jobID string) (*model.Export, error) {
	export, err := s.exports.FindByJobID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("export job")
		}
		return nil, err
	}
	return export, nil
}

func (s *ExportService) buildAndUpload(ctx context.Context, jobID string, input CreateExportInput) (string, error) {
	pdfBytes, err := buildExportPDF(input.Title, input.OriginalText, input.Variants)
	if err != nil {
		return "", err
	}
	objectName := fmt.Sprintf("exports/%s.pdf", jobID)
	return s.storage.Upload(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf")
}

// buildExportPDF 排版规则：标题居中，原题放边框盒内，
// 每道题后留四条答题横线，变式题另起一页
func buildExportPDF(title, originalText string, variants []string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	// 内置字体不覆盖 CJK，中文经 UTF-8 转码后按占位宽度排版
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentWidth, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.SetDrawColor(0, 102, 204)
	pdf.SetLineWidth(0.6)
	pdf.Line(left, pdf.GetY()+2, pageWidth-right, pdf.GetY()+2)
	pdf.Ln(10)

	writeSectionHeading(pdf, tr, contentWidth, "原题")
	writeBoxedQuestion(pdf, tr, contentWidth, originalText)
	writeAnswerLines(pdf, tr, contentWidth)

	if len(variants) > 0 {
		pdf.AddPage()
		writeSectionHeading(pdf, tr, contentWidth, "变式题（举一反三）")
		for i, variant := range variants {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.SetTextColor(0, 102, 204)
			pdf.CellFormat(contentWidth, 8, tr(fmt.Sprintf("第 %d 题", i+1)), "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
			writeBoxedQuestion(pdf, tr, contentWidth, variant)
			writeAnswerLines(pdf, tr, contentWidth)
			pdf.Ln(6)
		}
	}

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(contentWidth, 8, tr("—— 智能错题本练习卷 ——"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSectionHeading(pdf *gofpdf.Fpdf, tr func(string) string, width float64, text string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(width, 10, tr(text), "", 1, "L", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeBoxedQuestion(pdf *gofpdf.Fpdf, tr func(string) string, width float64, text string) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetFillColor(250, 250, 250)
	pdf.SetDrawColor(204, 204, 204)
	pdf.SetLineWidth(0.4)
	pdf.MultiCell(width, 7, tr(text), "1", "L", true)
	pdf.Ln(3)
}

func writeAnswerLines(pdf *gofpdf.Fpdf, tr func(string) string, width float64) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(153, 153, 153)
	pdf.CellFormat(width, 6, tr("【答题区域】"), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(221, 221, 221)
	pdf.SetLineWidth(0.3)
	left, _, _, _ := pdf.GetMargins()
	for i := 0; i < 4; i++ {
		y := pdf.GetY() + 8
		pdf.Line(left, y, left+width, y)
		pdf.SetY(y)
	}
	pdf.Ln(6)
}
