package service

import (
	"strings"

	"wrongbook_backend/internal/config"
	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 学生档案年级未填时的占位值
const gradeUnset = "未设置"

type AuthService struct {
	users *repository.UserRepository
	db    *gorm.DB
	cfg   *config.Config
}

func NewAuthService(users *repository.UserRepository, db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{users: users, db: db, cfg: cfg}
}

type StudentLoginInput struct {
	Name      string
	StudentNo string
	Grade     string
}

type StudentLoginResult struct {
	Created      bool        `json:"created"`
	SessionToken string      `json:"sessionToken"`
	Student      *model.User `json:"student"`
}

// StudentLogin 按显示名解析学生身份。
// 采用首次登录自动建档策略：无匹配账号时创建 User + StudentProfile；
// 提供学号时按学号精确筛选，档案缺学号且恰有一个候选时自动回填；
// 多个候选且无法用学号区分时返回冲突。
func (s *AuthService) StudentLogin(input StudentLoginInput) (*StudentLoginResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, util.InvalidError("student name is required")
	}

	students, err := s.users.FindActiveStudentsByName(name)
	if err != nil {
		return nil, err
	}

	if len(students) == 0 {
		student, err := s.provisionStudent(name, input.StudentNo, input.Grade)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("Student auto-provisioned on first login",
			zap.String("name", name), zap.Uint("userId", student.ID))
		return s.buildResult(student, true)
	}

	if input.StudentNo != "" {
		var matched []model.User
		for _, item := range students {
			if item.StudentProfile != nil && item.StudentProfile.StudentNo == input.StudentNo {
				matched = append(matched, item)
			}
		}
		switch {
		case len(matched) > 0:
			students = matched
		case len(students) == 1 && students[0].StudentProfile != nil && students[0].StudentProfile.StudentNo == "":
			// 档案未填学号，回填后按同一账号继续
			students[0].StudentProfile.StudentNo = input.StudentNo
			if err := s.users.SaveProfile(students[0].StudentProfile); err != nil {
				return nil, err
			}
		default:
			return nil, util.UnauthorizedError("invalid student credentials")
		}
	}

	if len(students) > 1 {
		return nil, util.ConflictError("multiple students matched, please provide student_no for verification")
	}

	student := &students[0]
	if student.StudentProfile == nil {
		profile := &model.StudentProfile{
			UserID:    student.ID,
			StudentNo: input.StudentNo,
			Grade:     normalizeGrade(input.Grade),
		}
		if err := s.db.Create(profile).Error; err != nil {
			return nil, err
		}
		student.StudentProfile = profile
	}

	// 年级作为辅助信息：档案仍为占位值时回填，不作为硬性拦截条件
	if input.Grade != "" && (student.StudentProfile.Grade == "" || student.StudentProfile.Grade == gradeUnset) {
		student.StudentProfile.Grade = strings.TrimSpace(input.Grade)
		if err := s.users.SaveProfile(student.StudentProfile); err != nil {
			return nil, err
		}
	}

	return s.buildResult(student, false)
}

func (s *AuthService) provisionStudent(name, studentNo, grade string) (*model.User, error) {
	student := &model.User{
		Name:   name,
		Role:   model.RoleStudent,
		Status: model.UserActive,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		return tx.Create(&model.StudentProfile{
			UserID:    student.ID,
			StudentNo: studentNo,
			Grade:     normalizeGrade(grade),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(student.ID)
}

func (s *AuthService) buildResult(student *model.User, created bool) (*StudentLoginResult, error) {
	token, err := util.GenerateJWT(student, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	return &StudentLoginResult{
		Created:      created,
		SessionToken: token,
		Student:      student,
	}, nil
}

func normalizeGrade(grade string) string {
	grade = strings.TrimSpace(grade)
	if grade == "" {
		return gradeUnset
	}
	return grade
}
