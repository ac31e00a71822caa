package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaperService 试卷摄取流水线：OCR 识别 → 建试卷与题目 → 逐题裁图入库
type PaperService struct {
	papers  *repository.PaperRepository
	ocr     *OCRService
	images  *ImageService
	storage *StorageService
	db      *gorm.DB
}

func NewPaperService(
	papers *repository.PaperRepository,
	ocr *OCRService,
	images *ImageService,
	storage *StorageService,
	db *gorm.DB,
) *PaperService {
	return &PaperService{papers: papers, ocr: ocr, images: images, storage: storage, db: db}
}

type IngestPaperInput struct {
	Title       string
	Filename    string
	ContentType string
	ImageData   []byte
}

// IngestPaper 上传整页试卷并走完识别流水线。
// OCR 在任何写库之前执行，识别失败时不留下半成品记录；
// 单题裁图失败只记日志跳过，不影响其余题目。
func (s *PaperService) IngestPaper(ctx context.Context, input IngestPaperInput) (*model.Paper, []OcrItem, error) {
	if len(input.ImageData) == 0 {
		return nil, nil, util.InvalidError("image file is required")
	}
	title := input.Title
	if title == "" {
		title = input.Filename
	}
	if title == "" {
		title = "未命名试卷"
	}

	items, err := s.ocr.ExtractQuestions(ctx, input.ImageData, input.ContentType)
	if err != nil {
		return nil, nil, err
	}

	originalName := fmt.Sprintf("papers/%d%s", time.Now().UnixNano(), extOrPng(input.Filename))
	originalURL, err := s.storage.Upload(ctx, originalName,
		bytes.NewReader(input.ImageData), int64(len(input.ImageData)), input.ContentType)
	if err != nil {
		return nil, nil, fmt.Errorf("upload original image: %w", err)
	}

	paper := &model.Paper{
		Title:            title,
		OriginalImageURL: originalURL,
		Status:           model.PaperUploaded,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(paper).Error; err != nil {
			return err
		}
		for i, item := range items {
			question := model.Question{
				PaperID:    paper.ID,
				QuestionNo: i + 1,
				Text:       item.Text,
				HasImage:   item.HasImage,
				Status:     "active",
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			paper.Questions = append(paper.Questions, question)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// 裁图在事务外执行：失败跳过该题，试卷与题目已经落库
	for i, item := range items {
		if item.ImageBox == nil {
			continue
		}
		question := &paper.Questions[i]
		if err := s.attachQuestionImage(ctx, question, input.ImageData, *item.ImageBox); err != nil {
			logger.Log.Warn("Question image crop skipped",
				zap.Uint("questionId", question.ID),
				zap.Int("questionNo", question.QuestionNo),
				zap.Error(err))
		}
	}

	if err := s.papers.UpdateStatus(paper.ID, model.PaperProcessed); err != nil {
		return nil, nil, err
	}
	paper.Status = model.PaperProcessed

	logger.Log.Info("Paper ingested",
		zap.Uint("paperId", paper.ID),
		zap.Int("questions", len(items)))
	return paper, items, nil
}

func (s *PaperService) attachQuestionImage(ctx context.Context, question *model.Question, imageData []byte, box ImageBox) error {
	cropped, width, height, err := s.images.CropImage(imageData, box)
	if err != nil {
		return err
	}

	objectName := fmt.Sprintf("questions/%d/crop_%d.png", question.PaperID, question.ID)
	url, err := s.storage.Upload(ctx, objectName, bytes.NewReader(cropped), int64(len(cropped)), "image/png")
	if err != nil {
		return err
	}

	img := box.ToQuestionImage(question.ID)
	img.ImageURL = url
	img.Width = &width
	img.Height = &height
	if err := s.db.Create(img).Error; err != nil {
		return err
	}
	question.Images = append(question.Images, *img)
	return nil
}

func (s *PaperService) GetPaper(id uint) (*model.Paper, error) {
	paper, err := s.papers.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("paper")
		}
		return nil, err
	}
	return paper, nil
}

func (s *PaperService) DeletePaper(id uint) error {
	if _, err := s.GetPaper(id); err != nil {
		return err
	}
	return s.papers.Delete(id)
}

func extOrPng(filename string) string {
	if ext := path.Ext(filename); ext != "" {
		return ext
	}
	return ".png"
}
