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

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), db, testConfig())
}

func TestStudentLogin_AutoProvision(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	result, err := svc.StudentLogin(StudentLoginInput{Name: "小明", Grade: "三年级"})
	require.NoError(t, err)

	assert.True(t, result.Created)
	require.NotEmpty(t, result.SessionToken)

	// 会话令牌带回登录者身份
	claims, err := util.ParseJWT(result.SessionToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.Student.ID, claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.Equal(t, "小明", claims.Name)
	require.NotNil(t, result.Student.StudentProfile)
	assert.Equal(t, "三年级", result.Student.StudentProfile.Grade)
	assert.Equal(t, model.RoleStudent, result.Student.Role)

	// 再次登录命中同一账号，不再新建
	again, err := svc.StudentLogin(StudentLoginInput{Name: "小明"})
	require.NoError(t, err)
	assert.False(t, again.Created)
	assert.Equal(t, result.Student.ID, again.Student.ID)

	var count int64
	db.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestStudentLogin_GradeDefaultsWhenOmitted(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	result, err := svc.StudentLogin(StudentLoginInput{Name: "小红"})
	require.NoError(t, err)
	require.NotNil(t, result.Student.StudentProfile)
	assert.Equal(t, "未设置", result.Student.StudentProfile.Grade)

	// 之后带年级登录时回填占位值
	again, err := svc.StudentLogin(StudentLoginInput{Name: "小红", Grade: "二年级"})
	require.NoError(t, err)
	assert.Equal(t, "二年级", again.Student.StudentProfile.Grade)
}

func TestStudentLogin_BlankNameRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	_, err := svc.StudentLogin(StudentLoginInput{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}

func TestStudentLogin_StudentNoDisambiguation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	// 两个同名学生，各有学号
	for _, no := range []string{"S001", "S002"} {
		student := &model.User{Name: "张伟", Role: model.RoleStudent, Status: model.UserActive}
		require.NoError(t, db.Create(student).Error)
		require.NoError(t, db.Create(&model.StudentProfile{
			UserID:    student.ID,
			StudentNo: no,
			Grade:     "四年级",
		}).Error)
	}

	// 不带学号时无法消歧
	_, err := svc.StudentLogin(StudentLoginInput{Name: "张伟"})
	require.Error(t, err)
	assert.Equal(t, util.KindConflict, util.KindOf(err))

	// 学号命中唯一账号
	result, err := svc.StudentLogin(StudentLoginInput{Name: "张伟", StudentNo: "S002"})
	require.NoError(t, err)
	assert.Equal(t, "S002", result.Student.StudentProfile.StudentNo)

	// 学号不匹配任何档案
	_, err = svc.StudentLogin(StudentLoginInput{Name: "张伟", StudentNo: "S999"})
	require.Error(t, err)
	assert.Equal(t, util.KindUnauthorized, util.KindOf(err))
}

func TestStudentLogin_BackfillsMissingStudentNo(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	student := createTestStudent(t, db, "李娜", "五年级")

	result, err := svc.StudentLogin(StudentLoginInput{Name: "李娜", StudentNo: "S100"})
	require.NoError(t, err)
	assert.Equal(t, student.ID, result.Student.ID)
	assert.Equal(t, "S100", result.Student.StudentProfile.StudentNo)

	var profile model.StudentProfile
	require.NoError(t, db.Where("user_id = ?", student.ID).First(&profile).Error)
	assert.Equal(t, "S100", profile.StudentNo)
}

func TestStudentLogin_InactiveStudentNotMatched(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(db)

	student := &model.User{Name: "王芳", Role: model.RoleStudent, Status: model.UserInactive}
	require.NoError(t, db.Create(student).Error)

	// 停用账号不参与匹配，视为首次登录重新建档
	result, err := svc.StudentLogin(StudentLoginInput{Name: "王芳"})
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEqual(t, student.ID, result.Student.ID)
}
