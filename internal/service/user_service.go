package service

import (
	"errors"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	users *repository.UserRepository
	links *repository.ParentStudentLinkRepository
	db    *gorm.DB
}

func NewUserService(users *repository.UserRepository, links *repository.ParentStudentLinkRepository, db *gorm.DB) *UserService {
	return &UserService{users: users, links: links, db: db}
}

type StudentProfileInput struct {
	StudentNo    string `json:"studentNo"`
	Grade        string `json:"grade" binding:"required"`
	ClassName    string `json:"className"`
	SchoolName   string `json:"schoolName"`
	GuardianNote string `json:"guardianNote"`
}

type CreateUserInput struct {
	Name           string               `json:"name" binding:"required"`
	Email          *string              `json:"email"`
	Phone          *string              `json:"phone"`
	Role           string               `json:"role" binding:"required"`
	Status         string               `json:"status"`
	StudentProfile *StudentProfileInput `json:"studentProfile"`
}

func (s *UserService) CreateUser(input CreateUserInput) (*model.User, error) {
	if !model.ValidRole(input.Role) {
		return nil, util.InvalidError("invalid role '%s'", input.Role)
	}
	if input.Status == "" {
		input.Status = string(model.UserActive)
	}
	if !model.ValidUserStatus(input.Status) {
		return nil, util.InvalidError("invalid status '%s'", input.Status)
	}

	// 学生必须携带档案，其他角色不允许携带
	if input.Role == string(model.RoleStudent) && input.StudentProfile == nil {
		return nil, util.InvalidError("student role requires studentProfile")
	}
	if input.Role != string(model.RoleStudent) && input.StudentProfile != nil {
		return nil, util.InvalidError("only student role can carry studentProfile")
	}

	user := &model.User{
		Name:   input.Name,
		Email:  input.Email,
		Phone:  input.Phone,
		Role:   model.UserRole(input.Role),
		Status: model.UserStatus(input.Status),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if input.StudentProfile != nil {
			return tx.Create(&model.StudentProfile{
				UserID:       user.ID,
				StudentNo:    input.StudentProfile.StudentNo,
				Grade:        input.StudentProfile.Grade,
				ClassName:    input.StudentProfile.ClassName,
				SchoolName:   input.StudentProfile.SchoolName,
				GuardianNote: input.StudentProfile.GuardianNote,
			}).Error
		}
		return nil
	})
	if err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("user email/phone already exists")
		}
		return nil, err
	}

	return s.users.FindByID(user.ID)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("user")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(filter repository.UserFilter) ([]model.User, int64, error) {
	if filter.Role != "" && !model.ValidRole(filter.Role) {
		return nil, 0, util.InvalidError("invalid role '%s'", filter.Role)
	}
	if filter.Status != "" && !model.ValidUserStatus(filter.Status) {
		return nil, 0, util.InvalidError("invalid status '%s'", filter.Status)
	}
	return s.users.List(filter)
}

type UpdateUserInput struct {
	Name           *string              `json:"name"`
	Email          *string              `json:"email"`
	Phone          *string              `json:"phone"`
	Role           *string              `json:"role"`
	Status         *string              `json:"status"`
	StudentProfile *StudentProfileInput `json:"studentProfile"`
	// HasProfileUpdate 区分“未提交档案字段”与“显式置空档案”
	HasProfileUpdate bool `json:"-"`
}

func (s *UserService) UpdateUser(id uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	roleAfter := string(user.Role)
	if input.Role != nil {
		roleAfter = *input.Role
	}
	statusAfter := string(user.Status)
	if input.Status != nil {
		statusAfter = *input.Status
	}
	if !model.ValidRole(roleAfter) {
		return nil, util.InvalidError("invalid role '%s'", roleAfter)
	}
	if !model.ValidUserStatus(statusAfter) {
		return nil, util.InvalidError("invalid status '%s'", statusAfter)
	}

	if roleAfter == string(model.RoleStudent) {
		if input.HasProfileUpdate && input.StudentProfile == nil {
			return nil, util.InvalidError("studentProfile cannot be null for student role")
		}
		if user.StudentProfile == nil && input.StudentProfile == nil {
			return nil, util.InvalidError("student role requires studentProfile")
		}
	} else if input.StudentProfile != nil {
		return nil, util.InvalidError("only student role can carry studentProfile")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = input.Email
		}
		if input.Phone != nil {
			user.Phone = input.Phone
		}
		user.Role = model.UserRole(roleAfter)
		user.Status = model.UserStatus(statusAfter)

		// 档案随角色同步：离开学生角色时删除档案
		if roleAfter != string(model.RoleStudent) && user.StudentProfile != nil {
			if err := tx.Delete(user.StudentProfile).Error; err != nil {
				return err
			}
			user.StudentProfile = nil
		}

		if input.StudentProfile != nil {
			if user.StudentProfile != nil {
				user.StudentProfile.StudentNo = input.StudentProfile.StudentNo
				user.StudentProfile.Grade = input.StudentProfile.Grade
				user.StudentProfile.ClassName = input.StudentProfile.ClassName
				user.StudentProfile.SchoolName = input.StudentProfile.SchoolName
				user.StudentProfile.GuardianNote = input.StudentProfile.GuardianNote
				if err := tx.Save(user.StudentProfile).Error; err != nil {
					return err
				}
			} else {
				if err := tx.Create(&model.StudentProfile{
					UserID:       user.ID,
					StudentNo:    input.StudentProfile.StudentNo,
					Grade:        input.StudentProfile.Grade,
					ClassName:    input.StudentProfile.ClassName,
					SchoolName:   input.StudentProfile.SchoolName,
					GuardianNote: input.StudentProfile.GuardianNote,
				}).Error; err != nil {
					return err
				}
			}
		}

		return tx.Omit("StudentProfile").Save(user).Error
	})
	if err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("user email/phone already exists")
		}
		return nil, err
	}

	return s.users.FindByID(id)
}

type CreateLinkInput struct {
	ParentID     uint   `json:"parentId" binding:"required"`
	StudentID    uint   `json:"studentId" binding:"required"`
	RelationType string `json:"relationType"`
}

func (s *UserService) CreateParentStudentLink(input CreateLinkInput) (*model.ParentStudentLink, error) {
	if input.ParentID == input.StudentID {
		return nil, util.InvalidError("parentId and studentId must be different")
	}

	parent, err := s.GetUser(input.ParentID)
	if err != nil {
		return nil, err
	}
	student, err := s.GetUser(input.StudentID)
	if err != nil {
		return nil, err
	}
	if parent.Role != model.RoleParent {
		return nil, util.RoleMismatchError("parentId must reference a user with role=parent")
	}
	if student.Role != model.RoleStudent {
		return nil, util.RoleMismatchError("studentId must reference a user with role=student")
	}

	exists, err := s.links.Exists(input.ParentID, input.StudentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ConflictError("parent-student link already exists")
	}

	if input.RelationType == "" {
		input.RelationType = "parent"
	}
	link := &model.ParentStudentLink{
		ParentID:     input.ParentID,
		StudentID:    input.StudentID,
		RelationType: input.RelationType,
	}
	if err := s.links.Create(link); err != nil {
		if util.IsDuplicateKey(err) {
			return nil, util.ConflictError("parent-student link already exists")
		}
		return nil, err
	}
	return link, nil
}

func (s *UserService) DeleteParentStudentLink(id uint) error {
	link, err := s.links.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("parent-student link")
		}
		return err
	}
	return s.links.Delete(link)
}

func (s *UserService) ListStudentsByParent(parentID uint) ([]model.ParentStudentLink, error) {
	parent, err := s.GetUser(parentID)
	if err != nil {
		return nil, err
	}
	if parent.Role != model.RoleParent {
		return nil, util.RoleMismatchError("user is not a parent")
	}
	return s.links.ListByParent(parentID)
}

func (s *UserService) ListParentsByStudent(studentID uint) ([]model.ParentStudentLink, error) {
	student, err := s.GetUser(studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != model.RoleStudent {
		return nil, util.RoleMismatchError("user is not a student")
	}
	return s.links.ListByStudent(studentID)
}
