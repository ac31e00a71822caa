package service

import (
	"testing"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestCreateWrongQuestion_GradeBackfilledFromProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: student.ID,
		Content:   "5支铅笔每支2元，一共多少钱？",
	})
	require.NoError(t, err)

	assert.Equal(t, "三年级", question.Grade)
	assert.Equal(t, model.StatusNew, question.Status)
	assert.Equal(t, 1, question.ErrorCount)
	assert.Equal(t, model.DifficultyMedium, question.Difficulty)
	assert.Equal(t, "manual", question.Source)
	assert.False(t, question.FirstErrorDate.IsZero())
}

func TestCreateWrongQuestion_NonStudentRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)

	teacher := &model.User{Name: "王老师", Role: model.RoleTeacher, Status: model.UserActive}
	require.NoError(t, db.Create(teacher).Error)

	_, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: teacher.ID,
		Content:   "题目",
		Grade:     "三年级",
	})
	require.Error(t, err)
	assert.Equal(t, util.KindRoleMismatch, util.KindOf(err))
}

func TestCreateWrongQuestion_ReasonCategoryConsistency(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	catA := &model.WrongQuestionCategory{Name: "计算错误"}
	catB := &model.WrongQuestionCategory{Name: "审题失误"}
	require.NoError(t, db.Create(catA).Error)
	require.NoError(t, db.Create(catB).Error)

	reasonB := &model.ErrorReason{Name: "漏看条件", CategoryID: &catB.ID}
	require.NoError(t, db.Create(reasonB).Error)

	// 原因属于分类 B，错题挂在分类 A 上
	_, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目",
		CategoryID:     &catA.ID,
		ErrorReasonIDs: []uint{reasonB.ID},
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	// 校验失败时不留下半成品
	var count int64
	db.Model(&model.WrongQuestion{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// 分类一致时创建成功，原因链接按 ID 升序返回
	reasonB2 := &model.ErrorReason{Name: "单位混淆", CategoryID: &catB.ID}
	require.NoError(t, db.Create(reasonB2).Error)

	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目",
		CategoryID:     &catB.ID,
		ErrorReasonIDs: []uint{reasonB2.ID, reasonB.ID, reasonB.ID},
	})
	require.NoError(t, err)
	require.Len(t, question.ReasonLinks, 2)
	assert.Equal(t, reasonB.ID, question.ReasonLinks[0].ErrorReasonID)
	assert.Equal(t, reasonB2.ID, question.ReasonLinks[1].ErrorReasonID)
}

func TestCreateWrongQuestion_MissingReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	missing := uint(9999)
	cases := []struct {
		name  string
		input CreateWrongQuestionInput
	}{
		{"subject", CreateWrongQuestionInput{StudentID: student.ID, Content: "q", SubjectID: &missing}},
		{"category", CreateWrongQuestionInput{StudentID: student.ID, Content: "q", CategoryID: &missing}},
		{"reason", CreateWrongQuestionInput{StudentID: student.ID, Content: "q", ErrorReasonIDs: []uint{missing}}},
		{"paper", CreateWrongQuestionInput{StudentID: student.ID, Content: "q", PaperID: &missing}},
		{"student", CreateWrongQuestionInput{StudentID: missing, Content: "q"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateWrongQuestion(tc.input)
			require.Error(t, err)
			assert.Equal(t, util.KindNotFound, util.KindOf(err))
		})
	}
}

func createTestWrongQuestion(t *testing.T, svc *WrongQuestionService, studentID uint) *model.WrongQuestion {
	t.Helper()
	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID: studentID,
		Content:   "看图写出角的度数。",
		Grade:     "三年级",
	})
	require.NoError(t, err)
	return question
}

func TestCreateStudyRecord_IncorrectGoesBackToReviewing(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	record, err := svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:    "incorrect",
		StudyDate: "2026-08-20",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ResultIncorrect, record.Result)
	assert.Equal(t, student.ID, record.StudentID)

	updated, err := svc.GetWrongQuestion(question.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReviewing, updated.Status)
	assert.Equal(t, 2, updated.ErrorCount)
	assert.Equal(t, "incorrect", updated.LastPracticeResult)
	require.NotNil(t, updated.LastReviewDate)
	assert.Equal(t, "2026-08-20", updated.LastReviewDate.Format(util.DateFormat))
}

func TestCreateStudyRecord_MasteryThresholdReachesMastered(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	// 掌握度未达标：new → reviewing
	_, err := svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:       "correct",
		MasteryLevel: intPtr(2),
	})
	require.NoError(t, err)
	updated, _ := svc.GetWrongQuestion(question.ID)
	assert.Equal(t, model.StatusReviewing, updated.Status)
	assert.Equal(t, 1, updated.ErrorCount)

	// 掌握度达标：reviewing → mastered
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:       "correct",
		MasteryLevel: intPtr(4),
	})
	require.NoError(t, err)
	updated, _ = svc.GetWrongQuestion(question.ID)
	assert.Equal(t, model.StatusMastered, updated.Status)

	// 再答错：mastered 退回 reviewing
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{Result: "incorrect"})
	require.NoError(t, err)
	updated, _ = svc.GetWrongQuestion(question.ID)
	assert.Equal(t, model.StatusReviewing, updated.Status)
	assert.Equal(t, 2, updated.ErrorCount)
}

func TestCreateStudyRecord_MasteryIgnoredUnlessCorrect(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	// 答错时掌握度照常入库，但不参与状态判定
	record, err := svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:       "incorrect",
		MasteryLevel: intPtr(5),
	})
	require.NoError(t, err)
	require.NotNil(t, record.MasteryLevel)
	assert.Equal(t, 5, *record.MasteryLevel)

	updated, err := svc.GetWrongQuestion(question.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusReviewing, updated.Status)
	assert.Equal(t, 2, updated.ErrorCount)

	// 跳过同理
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:       "skipped",
		MasteryLevel: intPtr(4),
	})
	require.NoError(t, err)
	updated, _ = svc.GetWrongQuestion(question.ID)
	assert.Equal(t, model.StatusReviewing, updated.Status)
}

func TestCreateStudyRecord_SkippedOnlyTouchesDates(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	_, err := svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:    "skipped",
		StudyDate: "2026-08-21",
	})
	require.NoError(t, err)

	updated, _ := svc.GetWrongQuestion(question.ID)
	assert.Equal(t, model.StatusNew, updated.Status)
	assert.Equal(t, 1, updated.ErrorCount)
	assert.Equal(t, "skipped", updated.LastPracticeResult)
	require.NotNil(t, updated.LastReviewDate)
}

func TestCreateStudyRecord_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	// 非法结果
	_, err := svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{Result: "almost"})
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	// 掌握度越界
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:       "correct",
		MasteryLevel: intPtr(6),
	})
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	// 归属人不一致
	other := createTestStudent(t, db, "小红", "三年级")
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:    "correct",
		StudentID: &other.ID,
	})
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	// 复核人必须存在
	missing := uint(9999)
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{
		Result:         "correct",
		ReviewerUserID: &missing,
	})
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	// 校验失败时不产生记录
	var count int64
	db.Model(&model.StudyRecord{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteWrongQuestion_CascadesLinksAndRecords(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	reason := &model.ErrorReason{Name: "粗心"}
	require.NoError(t, db.Create(reason).Error)

	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目",
		Grade:          "三年级",
		ErrorReasonIDs: []uint{reason.ID},
	})
	require.NoError(t, err)
	_, err = svc.CreateStudyRecord(question.ID, CreateStudyRecordInput{Result: "incorrect"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWrongQuestion(question.ID))

	var links, records int64
	db.Model(&model.WrongQuestionErrorReason{}).Count(&links)
	db.Model(&model.StudyRecord{}).Count(&records)
	assert.EqualValues(t, 0, links)
	assert.EqualValues(t, 0, records)

	_, err = svc.GetWrongQuestion(question.ID)
	assert.Equal(t, util.KindNotFound, util.KindOf(err))

	// 原因字典本身保留
	var reasons int64
	db.Model(&model.ErrorReason{}).Count(&reasons)
	assert.EqualValues(t, 1, reasons)
}

func TestUpdateWrongQuestion_ReplacesReasonLinks(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	r1 := &model.ErrorReason{Name: "粗心"}
	r2 := &model.ErrorReason{Name: "概念不清"}
	require.NoError(t, db.Create(r1).Error)
	require.NoError(t, db.Create(r2).Error)

	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目",
		Grade:          "三年级",
		ErrorReasonIDs: []uint{r1.ID},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{
		ErrorReasonIDs:  []uint{r2.ID},
		HasReasonUpdate: true,
	})
	require.NoError(t, err)
	require.Len(t, updated.ReasonLinks, 1)
	assert.Equal(t, r2.ID, updated.ReasonLinks[0].ErrorReasonID)

	// 未提交原因列表时链接保持不变
	bookmarked := true
	updated, err = svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{
		IsBookmarked: &bookmarked,
	})
	require.NoError(t, err)
	require.Len(t, updated.ReasonLinks, 1)
	assert.True(t, updated.IsBookmarked)
}

func TestUpdateWrongQuestion_CategoryChangeChecksLinkedReasons(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")

	catA := &model.WrongQuestionCategory{Name: "计算错误"}
	catB := &model.WrongQuestionCategory{Name: "审题失误"}
	require.NoError(t, db.Create(catA).Error)
	require.NoError(t, db.Create(catB).Error)

	reasonB := &model.ErrorReason{Name: "漏看条件", CategoryID: &catB.ID}
	require.NoError(t, db.Create(reasonB).Error)

	question, err := svc.CreateWrongQuestion(CreateWrongQuestionInput{
		StudentID:      student.ID,
		Content:        "题目",
		Grade:          "三年级",
		CategoryID:     &catB.ID,
		ErrorReasonIDs: []uint{reasonB.ID},
	})
	require.NoError(t, err)

	// 原因列表未动，换分类要用新分类复核既有链接
	_, err = svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{
		CategoryID:        &catA.ID,
		HasCategoryUpdate: true,
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))

	// 失败后不留半成品：分类和链接都保持原样
	unchanged, err := svc.GetWrongQuestion(question.ID)
	require.NoError(t, err)
	require.NotNil(t, unchanged.CategoryID)
	assert.Equal(t, catB.ID, *unchanged.CategoryID)
	require.Len(t, unchanged.ReasonLinks, 1)

	// 清空分类同样违反一致性（原因仍绑定分类 B）
	_, err = svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{
		CategoryID:        nil,
		HasCategoryUpdate: true,
	})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}

func TestUpdateWrongQuestion_ManualStatusEdit(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestWrongQuestionService(db)
	student := createTestStudent(t, db, "小明", "三年级")
	question := createTestWrongQuestion(t, svc, student.ID)

	// 手工改状态不触发练习记录的派生副作用
	status := "mastered"
	updated, err := svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.StatusMastered, updated.Status)
	assert.Equal(t, 1, updated.ErrorCount)
	assert.Nil(t, updated.LastReviewDate)

	bad := "done"
	_, err = svc.UpdateWrongQuestion(question.ID, UpdateWrongQuestionInput{Status: &bad})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}
