package service

import (
	"errors"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"

	"gorm.io/gorm"
)

// MetadataService 管理学科、错题分类、错误原因三个字典
type MetadataService struct {
	subjects   *repository.SubjectRepository
	categories *repository.CategoryRepository
	reasons    *repository.ErrorReasonRepository
}

func NewMetadataService(
	subjects *repository.SubjectRepository,
	categories *repository.CategoryRepository,
	reasons *repository.ErrorReasonRepository,
) *MetadataService {
	return &MetadataService{subjects: subjects, categories: categories, reasons: reasons}
}

type CreateSubjectInput struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

func (s *MetadataService) CreateSubject(input CreateSubjectInput) (*model.Subject, error) {
	subject := &model.Subject{
		Code:     input.Code,
		Name:     input.Name,
		IsActive: true,
	}
	if err := s.subjects.Create(subject); err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("subject code or name already exists")
		}
		return nil, err
	}
	return subject, nil
}

func (s *MetadataService) ListSubjects(activeOnly bool, offset, limit int) ([]model.Subject, int64, error) {
	return s.subjects.List(activeOnly, offset, limit)
}

type CreateCategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *MetadataService) CreateCategory(input CreateCategoryInput) (*model.WrongQuestionCategory, error) {
	category := &model.WrongQuestionCategory{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.categories.Create(category); err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("category name already exists")
		}
		return nil, err
	}
	return category, nil
}

func (s *MetadataService) ListCategories(offset, limit int) ([]model.WrongQuestionCategory, int64, error) {
	return s.categories.List(offset, limit)
}

func (s *MetadataService) DeleteCategory(id uint) error {
	category, err := s.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("category")
		}
		return err
	}
	return s.categories.Delete(category)
}

type CreateErrorReasonInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"categoryId"`
}

func (s *MetadataService) CreateErrorReason(input CreateErrorReasonInput) (*model.ErrorReason, error) {
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("category")
			}
			return nil, err
		}
	}
	reason := &model.ErrorReason{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}
	if err := s.reasons.Create(reason); err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("error reason name already exists in this category")
		}
		return nil, err
	}
	return reason, nil
}

func (s *MetadataService) ListErrorReasons(categoryID *uint, offset, limit int) ([]model.ErrorReason, int64, error) {
	return s.reasons.List(categoryID, offset, limit)
}

func (s *MetadataService) DeleteErrorReason(id uint) error {
	reason, err := s.reasons.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("error reason")
		}
		return err
	}
	return s.reasons.Delete(reason)
}
