package repository

import (
	"wrongbook_backend/internal/model"

	"gorm.io/gorm"
)

type WrongQuestionRepository struct {
	DB *gorm.DB
}

func NewWrongQuestionRepository(db *gorm.DB) *WrongQuestionRepository {
	return &WrongQuestionRepository{DB: db}
}

func (r *WrongQuestionRepository) FindByID(id uint) (*model.WrongQuestion, error) {
	var item model.WrongQuestion
	err := r.DB.
		Preload("Student").
		Preload("Student.StudentProfile").
		Preload("Subject").
		Preload("Category").
		Preload("ReasonLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("error_reason_id ASC")
		}).
		Preload("ReasonLinks.ErrorReason").
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

type WrongQuestionFilter struct {
	StudentID     *uint
	SubjectID     *uint
	Grade         string
	Status        string
	CategoryID    *uint
	ErrorReasonID *uint
	IsBookmarked  *bool
	Keyword       string
	Offset        int
	Limit         int
}

func (r *WrongQuestionRepository) List(filter WrongQuestionFilter) ([]model.WrongQuestion, int64, error) {
	query := r.DB.Model(&model.WrongQuestion{})

	if filter.ErrorReasonID != nil {
		query = query.Joins(
			"JOIN wrong_question_error_reasons ON wrong_question_error_reasons.wrong_question_id = wrong_questions.id AND wrong_question_error_reasons.error_reason_id = ?",
			*filter.ErrorReasonID,
		)
	}
	if filter.StudentID != nil {
		query = query.Where("wrong_questions.student_id = ?", *filter.StudentID)
	}
	if filter.SubjectID != nil {
		query = query.Where("wrong_questions.subject_id = ?", *filter.SubjectID)
	}
	if filter.Grade != "" {
		query = query.Where("wrong_questions.grade = ?", filter.Grade)
	}
	if filter.Status != "" {
		query = query.Where("wrong_questions.status = ?", filter.Status)
	}
	if filter.CategoryID != nil {
		query = query.Where("wrong_questions.category_id = ?", *filter.CategoryID)
	}
	if filter.IsBookmarked != nil {
		query = query.Where("wrong_questions.is_bookmarked = ?", *filter.IsBookmarked)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where(
			"wrong_questions.title LIKE ? OR wrong_questions.content LIKE ? OR wrong_questions.notes LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.WrongQuestion
	err := query.
		Preload("Student").
		Preload("Student.StudentProfile").
		Preload("Subject").
		Preload("Category").
		Preload("ReasonLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("error_reason_id ASC")
		}).
		Preload("ReasonLinks.ErrorReason").
		Order("wrong_questions.updated_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&items).Error
	return items, total, err
}

// Delete 删除错题并级联删除其原因链接与练习记录，单事务完成
func (r *WrongQuestionRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wrong_question_id = ?", id).
			Delete(&model.WrongQuestionErrorReason{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wrong_question_id = ?", id).
			Delete(&model.StudyRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.WrongQuestion{}, id).Error
	})
}

type StudyRecordRepository struct {
	DB *gorm.DB
}

func NewStudyRecordRepository(db *gorm.DB) *StudyRecordRepository {
	return &StudyRecordRepository{DB: db}
}

func (r *StudyRecordRepository) ListByWrongQuestion(wrongQuestionID uint, offset, limit int) ([]model.StudyRecord, int64, error) {
	query := r.DB.Model(&model.StudyRecord{}).Where("wrong_question_id = ?", wrongQuestionID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.StudyRecord
	err := query.Order("study_date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}
