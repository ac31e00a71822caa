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

func newTestStatisticsService(db *gorm.DB) *StatisticsService {
	return NewStatisticsService(
		repository.NewStatisticsRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestGetOverview_CountsAndZeroFilledStatuses(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	wq := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	q1, err := wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:    student.ID,
		Content:      "题目一",
		Grade:        "三年级",
		IsBookmarked: true,
	})
	require.NoError(t, err)
	_, err = wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: student.ID,
		Content:   "题目二",
		Grade:     "三年级",
	})
	require.NoError(t, err)

	// 一次答错：q1 进入 reviewing，错误次数 2
	_, err = wq.CreateStudyRecord(q1.ID, CreateStudyRecordInput{Result: "incorrect"})
	require.NoError(t, err)

	overview, err := stats.GetOverview(StatQuery{StudentID: student.ID})
	require.NoError(t, err)

	assert.EqualValues(t, 2, overview.TotalWrongQuestions)
	assert.EqualValues(t, 1, overview.BookmarkedCount)
	assert.EqualValues(t, 3, overview.TotalErrorCount)
	assert.EqualValues(t, 1, overview.TotalStudyRecords)
	assert.EqualValues(t, 1, overview.StatusCounts["new"])
	assert.EqualValues(t, 1, overview.StatusCounts["reviewing"])
	// mastered 为空桶也要补零
	mastered, ok := overview.StatusCounts["mastered"]
	assert.True(t, ok)
	assert.EqualValues(t, 0, mastered)
}

func TestGetOverview_EmptyStudent(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	student := createTestStudent(t, db, "小红", "三年级")

	overview, err := stats.GetOverview(StatQuery{StudentID: student.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 0, overview.TotalWrongQuestions)
	assert.EqualValues(t, 0, overview.TotalErrorCount)
	assert.Len(t, overview.StatusCounts, 3)
}

func TestStatistics_StudentChecks(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)

	teacher := &model.User{Name: "王老师", Role: model.RoleTeacher, Status: model.UserActive}
	require.NoError(t, db.Create(teacher).Error)

	_, err := stats.GetOverview(StatQuery{StudentID: teacher.ID})
	assert.Equal(t, util.KindRoleMismatch, util.KindOf(err))

	_, err = stats.GetOverview(StatQuery{StudentID: 9999})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))
}

func TestStatistics_WindowValidation(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	_, err := stats.GetOverview(StatQuery{
		StudentID: student.ID,
		StartDate: "2026-08-10",
		EndDate:   "2026-08-01",
	})
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	_, err = stats.Trend(StatQuery{StudentID: student.ID, StartDate: "08/10/2026"})
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}

func TestStatistics_WindowFiltersOnFirstErrorDate(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	wq := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	for _, date := range []string{"2026-08-01", "2026-08-15", "2026-08-28"} {
		_, err := wq.CreateWrongQuestion(CreateWrongQuestionInput{
			StudentID:      student.ID,
			Content:        "题目",
			Grade:          "三年级",
			FirstErrorDate: date,
		})
		require.NoError(t, err)
	}

	overview, err := stats.GetOverview(StatQuery{
		StudentID: student.ID,
		StartDate: "2026-08-10",
		EndDate:   "2026-08-20",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, overview.TotalWrongQuestions)
}

func TestByErrorReason_MultiReasonQuestionCountsInEachBucket(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	wq := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	r1 := &model.ErrorReason{Name: "粗心"}
	r2 := &model.ErrorReason{Name: "概念不清"}
	require.NoError(t, db.Create(r1).Error)
	require.NoError(t, db.Create(r2).Error)

	_, err := wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目一",
		Grade:          "三年级",
		ErrorReasonIDs: []uint{r1.ID, r2.ID},
	})
	require.NoError(t, err)
	_, err = wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目二",
		Grade:          "三年级",
		ErrorReasonIDs: []uint{r1.ID},
	})
	require.NoError(t, err)

	rows, err := stats.ByErrorReason(StatQuery{StudentID: student.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.ReasonName] = row.Total
	}
	assert.EqualValues(t, 2, totals["粗心"])
	assert.EqualValues(t, 1, totals["概念不清"])
	// 降序排列，多数原因在前
	assert.Equal(t, "粗心", rows[0].ReasonName)
}

func TestBySubject_UncategorizedGoesToNullBucket(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	wq := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	subject := &model.Subject{Code: "math", Name: "数学"}
	require.NoError(t, db.Create(subject).Error)

	_, err := wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: student.ID,
		Content:   "数学题",
		Grade:     "三年级",
		SubjectID: &subject.ID,
	})
	require.NoError(t, err)
	_, err = wq.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: student.ID,
		Content:   "未分科的题",
		Grade:     "三年级",
	})
	require.NoError(t, err)

	rows, err := stats.BySubject(StatQuery{StudentID: student.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var sawMath, sawNull bool
	for _, row := range rows {
		if row.SubjectID != nil && *row.SubjectID == subject.ID {
			sawMath = true
			assert.EqualValues(t, 1, row.Total)
			require.NotNil(t, row.SubjectName)
			assert.Equal(t, "数学", *row.SubjectName)
		}
		if row.SubjectID == nil {
			sawNull = true
			assert.EqualValues(t, 1, row.Total)
		}
	}
	assert.True(t, sawMath)
	assert.True(t, sawNull)
}

func TestTrend_GroupsByStudyDate(t *testing.T) {
	db := setupTestDB(t)
	stats := newTestStatisticsService(db)
	wq := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, wq, student.ID)

	records := []struct {
		date   string
		result string
	}{
		{"2026-08-20", "incorrect"},
		{"2026-08-20", "correct"},
		{"2026-08-21", "correct"},
		{"2026-08-21", "skipped"},
	}
	for _, r := range records {
		_, err := wq.CreateStudyRecord(question.ID, CreateStudyRecordInput{
			Result:    r.result,
			StudyDate: r.date,
		})
		require.NoError(t, err)
	}

	rows, err := stats.Trend(StatQuery{StudentID: student.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2026-08-20", rows[0].Date.Format(util.DateFormat))
	assert.EqualValues(t, 2, rows[0].Total)
	assert.EqualValues(t, 1, rows[0].CorrectCount)
	assert.EqualValues(t, 1, rows[0].IncorrectCount)

	assert.Equal(t, "2026-08-21", rows[1].Date.Format(util.DateFormat))
	assert.EqualValues(t, 2, rows[1].Total)
	assert.EqualValues(t, 1, rows[1].CorrectCount)
	assert.EqualValues(t, 0, rows[1].IncorrectCount)

	// 趋势窗口按 study_date 过滤
	filtered, err := stats.Trend(StatQuery{
		StudentID: student.ID,
		StartDate: "2026-08-21",
	})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "2026-08-21", filtered[0].Date.Format(util.DateFormat))
}
