package repository

import (
	"wrongbook_backend/internal/model"

	"gorm.io/gorm"
)

type PaperRepository struct {
	DB *gorm.DB
}

func NewPaperRepository(db *gorm.DB) *PaperRepository {
	return &PaperRepository{DB: db}
}

func (r *PaperRepository) Create(paper *model.Paper) error {
	return r.DB.Create(paper).Error
}

func (r *PaperRepository) FindByID(id uint) (*model.Paper, error) {
	var paper model.Paper
	err := r.DB.Preload("Questions").Preload("Questions.Images").First(&paper, id).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *PaperRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Paper{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *PaperRepository) UpdateStatus(id uint, status model.PaperStatus) error {
	return r.DB.Model(&model.Paper{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 删除试卷及其题目、插图、变式题
func (r *PaperRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).
			Where("paper_id = ?", id).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.QuestionImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id IN ?", questionIDs).
				Delete(&model.Variant{}).Error; err != nil {
				return err
			}
			if err := tx.Where("paper_id = ?", id).
				Delete(&model.Question{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Paper{}, id).Error
	})
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	err := r.DB.Preload("Images").First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type VariantRepository struct {
	DB *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepository {
	return &VariantRepository{DB: db}
}

func (r *VariantRepository) CreateBatch(variants []model.Variant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.DB.Create(&variants).Error
}

func (r *VariantRepository) ListByQuestion(questionID uint) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.DB.Where("question_id = ?", questionID).Order("sequence ASC").Find(&variants).Error
	return variants, err
}

type ExportRepository struct {
	DB *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{DB: db}
}

func (r *ExportRepository) Create(export *model.Export) error {
	return r.DB.Create(export).Error
}

func (r *ExportRepository) FindByJobID(jobID string) (*model.Export, error) {
	var export model.Export
	err := r.DB.Where("job_id = ?", jobID).First(&export).Error
	if err != nil {
		return nil, err
	}
	return &export, nil
}
