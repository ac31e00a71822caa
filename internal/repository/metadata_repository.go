package repository

import (
	"wrongbook_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) List(activeOnly bool, offset, limit int) ([]model.Subject, int64, error) {
	query := r.DB.Model(&model.Subject{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var subjects []model.Subject
	err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&subjects).Error
	return subjects, total, err
}

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.WrongQuestionCategory) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindByID(id uint) (*model.WrongQuestionCategory, error) {
	var category model.WrongQuestionCategory
	err := r.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(offset, limit int) ([]model.WrongQuestionCategory, int64, error) {
	var total int64
	if err := r.DB.Model(&model.WrongQuestionCategory{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.WrongQuestionCategory
	err := r.DB.Order("id ASC").Offset(offset).Limit(limit).Find(&categories).Error
	return categories, total, err
}

// Delete 仅删除分类本身；关联错题的 category_id 置空，错误原因保留但脱离分类
func (r *CategoryRepository) Delete(category *model.WrongQuestionCategory) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.WrongQuestion{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.ErrorReason{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(category).Error
	})
}

type ErrorReasonRepository struct {
	DB *gorm.DB
}

func NewErrorReasonRepository(db *gorm.DB) *ErrorReasonRepository {
	return &ErrorReasonRepository{DB: db}
}

func (r *ErrorReasonRepository) Create(reason *model.ErrorReason) error {
	return r.DB.Create(reason).Error
}

func (r *ErrorReasonRepository) FindByID(id uint) (*model.ErrorReason, error) {
	var reason model.ErrorReason
	err := r.DB.First(&reason, id).Error
	if err != nil {
		return nil, err
	}
	return &reason, nil
}

func (r *ErrorReasonRepository) FindByIDs(ids []uint) ([]model.ErrorReason, error) {
	var reasons []model.ErrorReason
	err := r.DB.Where("id IN ?", ids).Find(&reasons).Error
	return reasons, err
}

func (r *ErrorReasonRepository) List(categoryID *uint, offset, limit int) ([]model.ErrorReason, int64, error) {
	query := r.DB.Model(&model.ErrorReason{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reasons []model.ErrorReason
	err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&reasons).Error
	return reasons, total, err
}

// Delete 删除原因字典条目并清理错题上的关联链接
func (r *ErrorReasonRepository) Delete(reason *model.ErrorReason) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("error_reason_id = ?", reason.ID).
			Delete(&model.WrongQuestionErrorReason{}).Error; err != nil {
			return err
		}
		return tx.Delete(reason).Error
	})
}
