package repository

import (
	"time"

	"wrongbook_backend/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

// StatWindow 统计时间窗口，两端闭区间。
// 错题维度的统计按 first_error_date 过滤，趋势统计按 study_date 过滤，
// 两个时间含义不同，不可混用。
type StatWindow struct {
	StartDate *time.Time
	EndDate   *time.Time
}

func (r *StatisticsRepository) wrongQuestionScope(studentID uint, window StatWindow) *gorm.DB {
	query := r.DB.Model(&model.WrongQuestion{}).Where("wrong_questions.student_id = ?", studentID)
	if window.StartDate != nil {
		query = query.Where("wrong_questions.first_error_date >= ?", *window.StartDate)
	}
	if window.EndDate != nil {
		query = query.Where("wrong_questions.first_error_date <= ?", *window.EndDate)
	}
	return query
}

func (r *StatisticsRepository) studyRecordScope(studentID uint, window StatWindow) *gorm.DB {
	query := r.DB.Model(&model.StudyRecord{}).Where("study_records.student_id = ?", studentID)
	if window.StartDate != nil {
		query = query.Where("study_records.study_date >= ?", *window.StartDate)
	}
	if window.EndDate != nil {
		query = query.Where("study_records.study_date <= ?", *window.EndDate)
	}
	return query
}

func (r *StatisticsRepository) CountWrongQuestions(studentID uint, window StatWindow) (int64, error) {
	var count int64
	err := r.wrongQuestionScope(studentID, window).Count(&count).Error
	return count, err
}

type StatusCount struct {
	Status model.WrongQuestionStatus
	Total  int64
}

func (r *StatisticsRepository) CountByStatus(studentID uint, window StatWindow) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.wrongQuestionScope(studentID, window).
		Select("wrong_questions.status AS status, COUNT(wrong_questions.id) AS total").
		Group("wrong_questions.status").
		Scan(&rows).Error
	return rows, err
}

func (r *StatisticsRepository) CountBookmarked(studentID uint, window StatWindow) (int64, error) {
	var count int64
	err := r.wrongQuestionScope(studentID, window).
		Where("wrong_questions.is_bookmarked = ?", true).
		Count(&count).Error
	return count, err
}

func (r *StatisticsRepository) SumErrorCount(studentID uint, window StatWindow) (int64, error) {
	var sum int64
	err := r.wrongQuestionScope(studentID, window).
		Select("COALESCE(SUM(wrong_questions.error_count), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *StatisticsRepository) CountStudyRecords(studentID uint, window StatWindow) (int64, error) {
	var count int64
	err := r.studyRecordScope(studentID, window).Count(&count).Error
	return count, err
}

// SubjectStat 学科维度统计；无学科的错题归入空桶（subject 字段为 NULL）
type SubjectStat struct {
	SubjectID   *uint   `json:"subjectId"`
	SubjectCode *string `json:"subjectCode"`
	SubjectName *string `json:"subjectName"`
	Total       int64   `json:"total"`
	Mastered    int64   `json:"mastered"`
}

func (r *StatisticsRepository) BySubject(studentID uint, window StatWindow) ([]SubjectStat, error) {
	var rows []SubjectStat
	err := r.wrongQuestionScope(studentID, window).
		Select(
			"subjects.id AS subject_id, subjects.code AS subject_code, subjects.name AS subject_name, " +
				"COUNT(wrong_questions.id) AS total, " +
				"COALESCE(SUM(CASE WHEN wrong_questions.status = 'mastered' THEN 1 ELSE 0 END), 0) AS mastered",
		).
		Joins("LEFT JOIN subjects ON subjects.id = wrong_questions.subject_id").
		Group("subjects.id, subjects.code, subjects.name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

type GradeStat struct {
	Grade string `json:"grade"`
	Total int64  `json:"total"`
}

func (r *StatisticsRepository) ByGrade(studentID uint, window StatWindow) ([]GradeStat, error) {
	var rows []GradeStat
	err := r.wrongQuestionScope(studentID, window).
		Select("wrong_questions.grade AS grade, COUNT(wrong_questions.id) AS total").
		Group("wrong_questions.grade").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

type CategoryStat struct {
	CategoryID   *uint   `json:"categoryId"`
	CategoryName *string `json:"categoryName"`
	Total        int64   `json:"total"`
}

func (r *StatisticsRepository) ByCategory(studentID uint, window StatWindow) ([]CategoryStat, error) {
	var rows []CategoryStat
	err := r.wrongQuestionScope(studentID, window).
		Select(
			"wrong_question_categories.id AS category_id, wrong_question_categories.name AS category_name, " +
				"COUNT(wrong_questions.id) AS total",
		).
		Joins("LEFT JOIN wrong_question_categories ON wrong_question_categories.id = wrong_questions.category_id").
		Group("wrong_question_categories.id, wrong_question_categories.name").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

// ErrorReasonStat 错误原因维度统计，基于多对多关联计数：
// 链接了 N 个原因的错题会分别计入 N 个原因桶
type ErrorReasonStat struct {
	ReasonID   uint   `json:"reasonId"`
	ReasonName string `json:"reasonName"`
	CategoryID *uint  `json:"categoryId"`
	Total      int64  `json:"total"`
}

func (r *StatisticsRepository) ByErrorReason(studentID uint, window StatWindow) ([]ErrorReasonStat, error) {
	var rows []ErrorReasonStat
	err := r.wrongQuestionScope(studentID, window).
		Select(
			"error_reasons.id AS reason_id, error_reasons.name AS reason_name, error_reasons.category_id AS category_id, " +
				"COUNT(wrong_question_error_reasons.wrong_question_id) AS total",
		).
		Joins("JOIN wrong_question_error_reasons ON wrong_question_error_reasons.wrong_question_id = wrong_questions.id").
		Joins("JOIN error_reasons ON error_reasons.id = wrong_question_error_reasons.error_reason_id").
		Group("error_reasons.id, error_reasons.name, error_reasons.category_id").
		Order("total DESC").
		Scan(&rows).Error
	return rows, err
}

type TrendStat struct {
	Date           time.Time `json:"date"`
	Total          int64     `json:"total"`
	CorrectCount   int64     `json:"correctCount"`
	IncorrectCount int64     `json:"incorrectCount"`
}

func (r *StatisticsRepository) Trend(studentID uint, window StatWindow) ([]TrendStat, error) {
	var rows []TrendStat
	err := r.studyRecordScope(studentID, window).
		Select(
			"study_records.study_date AS date, COUNT(study_records.id) AS total, " +
				"COALESCE(SUM(CASE WHEN study_records.result = 'correct' THEN 1 ELSE 0 END), 0) AS correct_count, " +
				"COALESCE(SUM(CASE WHEN study_records.result = 'incorrect' THEN 1 ELSE 0 END), 0) AS incorrect_count",
		).
		Group("study_records.study_date").
		Order("study_records.study_date ASC").
		Scan(&rows).Error
	return rows, err
}
