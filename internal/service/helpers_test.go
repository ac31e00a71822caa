package service

import (
	"fmt"
	"testing"
	"time"

	"wrongbook_backend/internal/config"
	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	pkglogger "wrongbook_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	pkglogger.Log = zap.NewNop()
}

// setupTestDB 每个测试用独立命名的共享内存库，避免连接池拿到空库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.StudentProfile{},
		&model.ParentStudentLink{},
		&model.Subject{},
		&model.WrongQuestionCategory{},
		&model.ErrorReason{},
		&model.WrongQuestion{},
		&model.WrongQuestionErrorReason{},
		&model.StudyRecord{},
		&model.Paper{},
		&model.Question{},
		&model.QuestionImage{},
		&model.Variant{},
		&model.Export{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret",
			ExpireTime: time.Hour,
		},
	}
}

func newTestWrongQuestionService(db *gorm.DB) *WrongQuestionService {
	return NewWrongQuestionService(
		repository.NewWrongQuestionRepository(db),
		repository.NewStudyRecordRepository(db),
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewErrorReasonRepository(db),
		repository.NewPaperRepository(db),
		repository.NewQuestionRepository(db),
		db,
	)
}

func createTestStudent(t *testing.T, db *gorm.DB, name, grade string) *model.User {
	t.Helper()
	student := &model.User{Name: name, Role: model.RoleStudent, Status: model.UserActive}
	require.NoError(t, db.Create(student).Error)
	require.NoError(t, db.Create(&model.StudentProfile{
		UserID: student.ID,
		Grade:  grade,
	}).Error)
	return student
}
