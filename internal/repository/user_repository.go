package repository

import (
	"wrongbook_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("StudentProfile").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Save(user *model.User) error {
	return r.DB.Save(user).Error
}

type UserFilter struct {
	Role    string
	Status  string
	Keyword string
	Offset  int
	Limit   int
}

func (r *UserRepository) List(filter UserFilter) ([]model.User, int64, error) {
	query := r.DB.Model(&model.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := query.Preload("StudentProfile").
		Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&users).Error
	return users, total, err
}

// FindActiveStudentsByName 登录解析用：按显示名查找启用中的学生账号
func (r *UserRepository) FindActiveStudentsByName(name string) ([]model.User, error) {
	var users []model.User
	err := r.DB.Preload("StudentProfile").
		Where("role = ? AND status = ? AND name = ?", model.RoleStudent, model.UserActive, name).
		Order("id ASC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) SaveProfile(profile *model.StudentProfile) error {
	return r.DB.Save(profile).Error
}

func (r *UserRepository) DeleteProfile(profile *model.StudentProfile) error {
	return r.DB.Delete(profile).Error
}

type ParentStudentLinkRepository struct {
	DB *gorm.DB
}

func NewParentStudentLinkRepository(db *gorm.DB) *ParentStudentLinkRepository {
	return &ParentStudentLinkRepository{DB: db}
}

func (r *ParentStudentLinkRepository) Create(link *model.ParentStudentLink) error {
	return r.DB.Create(link).Error
}

func (r *ParentStudentLinkRepository) FindByID(id uint) (*model.ParentStudentLink, error) {
	var link model.ParentStudentLink
	err := r.DB.First(&link, id).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *ParentStudentLinkRepository) Exists(parentID, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ParentStudentLink{}).
		Where("parent_id = ? AND student_id = ?", parentID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *ParentStudentLinkRepository) Delete(link *model.ParentStudentLink) error {
	return r.DB.Delete(link).Error
}

func (r *ParentStudentLinkRepository) ListByParent(parentID uint) ([]model.ParentStudentLink, error) {
	var links []model.ParentStudentLink
	err := r.DB.Preload("Student").Preload("Student.StudentProfile").
		Where("parent_id = ?", parentID).
		Order("id DESC").
		Find(&links).Error
	return links, err
}

func (r *ParentStudentLinkRepository) ListByStudent(studentID uint) ([]model.ParentStudentLink, error) {
	var links []model.ParentStudentLink
	err := r.DB.Preload("Parent").
		Where("student_id = ?", studentID).
		Order("id DESC").
		Find(&links).Error
	return links, err
}
