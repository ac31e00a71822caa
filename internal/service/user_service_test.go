package service

import (
	"testing"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewParentStudentLinkRepository(db),
		db,
	)
}

func TestCreateUser_StudentRequiresProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	_, err := svc.CreateUser(CreateUserInput{Name: "小明", Role: "student"})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	user, err := svc.CreateUser(CreateUserInput{
		Name: "小明",
		Role: "student",
		StudentProfile: &StudentProfileInput{
			Grade:     "三年级",
			ClassName: "三(2)班",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, user.StudentProfile)
	assert.Equal(t, "三年级", user.StudentProfile.Grade)
	assert.Equal(t, model.UserActive, user.Status)
}

func TestCreateUser_NonStudentRejectsProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	_, err := svc.CreateUser(CreateUserInput{
		Name:           "王老师",
		Role:           "teacher",
		StudentProfile: &StudentProfileInput{Grade: "三年级"},
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}

func TestCreateUser_DuplicateEmailConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	email := "parent@example.com"
	_, err := svc.CreateUser(CreateUserInput{Name: "家长甲", Role: "parent", Email: &email})
	require.NoError(t, err)

	_, err = svc.CreateUser(CreateUserInput{Name: "家长乙", Role: "parent", Email: &email})
	require.Error(t, err)
	assert.Equal(t, util.KindConflict, util.KindOf(err))
}

func TestUpdateUser_RoleChangeDropsProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	user, err := svc.CreateUser(CreateUserInput{
		Name:           "小刚",
		Role:           "student",
		StudentProfile: &StudentProfileInput{Grade: "六年级"},
	})
	require.NoError(t, err)

	newRole := "teacher"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Role: &newRole})
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, updated.Role)
	assert.Nil(t, updated.StudentProfile)

	var count int64
	db.Model(&model.StudentProfile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestParentStudentLink_Lifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	parent := &model.User{Name: "家长", Role: model.RoleParent, Status: model.UserActive}
	require.NoError(t, db.Create(parent).Error)
	student := createTestStudent(t, db, "小明", "三年级")

	link, err := svc.CreateParentStudentLink(CreateLinkInput{
		ParentID:  parent.ID,
		StudentID: student.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "parent", link.RelationType)

	// 重复绑定冲突
	_, err = svc.CreateParentStudentLink(CreateLinkInput{
		ParentID:  parent.ID,
		StudentID: student.ID,
	})
	require.Error(t, err)
	assert.Equal(t, util.KindConflict, util.KindOf(err))

	students, err := svc.ListStudentsByParent(parent.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, student.ID, students[0].StudentID)

	parents, err := svc.ListParentsByStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, parents, 1)

	require.NoError(t, svc.DeleteParentStudentLink(link.ID))
	err = svc.DeleteParentStudentLink(link.ID)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestParentStudentLink_RoleChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestUserService(db)

	student := createTestStudent(t, db, "小明", "三年级")
	other := createTestStudent(t, db, "小红", "三年级")

	// 学生当家长用
	_, err := svc.CreateParentStudentLink(CreateLinkInput{
		ParentID:  other.ID,
		StudentID: student.ID,
	})
	require.Error(t, err)
	assert.Equal(t, util.KindRoleMismatch, util.KindOf(err))

	// 自己绑定自己
	_, err = svc.CreateParentStudentLink(CreateLinkInput{
		ParentID:  student.ID,
		StudentID: student.ID,
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}
