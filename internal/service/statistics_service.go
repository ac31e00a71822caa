package service

import (
	"errors"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"

	"gorm.io/gorm"
)

type StatisticsService struct {
	stats *repository.StatisticsRepository
	users *repository.UserRepository
}

func NewStatisticsService(stats *repository.StatisticsRepository, users *repository.UserRepository) *StatisticsService {
	return &StatisticsService{stats: stats, users: users}
}

type StatQuery struct {
	StudentID uint
	StartDate string
	EndDate   string
}

func (s *StatisticsService) resolveWindow(query StatQuery) (repository.StatWindow, error) {
	var window repository.StatWindow
	if query.StartDate != "" {
		start, err := util.ParseDate(query.StartDate)
		if err != nil {
			return window, util.InvalidError("invalid startDate, expect YYYY-MM-DD")
		}
		start = util.TruncateToDate(start)
		window.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := util.ParseDate(query.EndDate)
		if err != nil {
			return window, util.InvalidError("invalid endDate, expect YYYY-MM-DD")
		}
		end = util.TruncateToDate(end)
		window.EndDate = &end
	}
	if window.StartDate != nil && window.EndDate != nil && window.EndDate.Before(*window.StartDate) {
		return window, util.InvalidError("endDate must not be before startDate")
	}
	return window, nil
}

func (s *StatisticsService) requireStudent(studentID uint) error {
	student, err := s.users.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("student")
		}
		return err
	}
	if student.Role != model.RoleStudent {
		return util.RoleMismatchError("studentId must reference a user with role=student")
	}
	return nil
}

// Overview 学生错题总览：总量、状态分布、收藏数、累计错误次数、练习次数
type Overview struct {
	TotalWrongQuestions int64            `json:"totalWrongQuestions"`
	StatusCounts        map[string]int64 `json:"statusCounts"`
	BookmarkedCount     int64            `json:"bookmarkedCount"`
	TotalErrorCount     int64            `json:"totalErrorCount"`
	TotalStudyRecords   int64            `json:"totalStudyRecords"`
}

func (s *StatisticsService) GetOverview(query StatQuery) (*Overview, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}

	total, err := s.stats.CountWrongQuestions(query.StudentID, window)
	if err != nil {
		return nil, err
	}
	statusRows, err := s.stats.CountByStatus(query.StudentID, window)
	if err != nil {
		return nil, err
	}
	bookmarked, err := s.stats.CountBookmarked(query.StudentID, window)
	if err != nil {
		return nil, err
	}
	errorSum, err := s.stats.SumErrorCount(query.StudentID, window)
	if err != nil {
		return nil, err
	}
	recordCount, err := s.stats.CountStudyRecords(query.StudentID, window)
	if err != nil {
		return nil, err
	}

	// 空桶补零，前端无需判空
	statusCounts := map[string]int64{
		string(model.StatusNew):       0,
		string(model.StatusReviewing): 0,
		string(model.StatusMastered):  0,
	}
	for _, row := range statusRows {
		statusCounts[string(row.Status)] = row.Total
	}

	return &Overview{
		TotalWrongQuestions: total,
		StatusCounts:        statusCounts,
		BookmarkedCount:     bookmarked,
		TotalErrorCount:     errorSum,
		TotalStudyRecords:   recordCount,
	}, nil
}

func (s *StatisticsService) BySubject(query StatQuery) ([]repository.SubjectStat, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}
	return s.stats.BySubject(query.StudentID, window)
}

func (s *StatisticsService) ByGrade(query StatQuery) ([]repository.GradeStat, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}
	return s.stats.ByGrade(query.StudentID, window)
}

func (s *StatisticsService) ByCategory(query StatQuery) ([]repository.CategoryStat, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}
	return s.stats.ByCategory(query.StudentID, window)
}

func (s *StatisticsService) ByErrorReason(query StatQuery) ([]repository.ErrorReasonStat, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}
	return s.stats.ByErrorReason(query.StudentID, window)
}

func (s *StatisticsService) Trend(query StatQuery) ([]repository.TrendStat, error) {
	if err := s.requireStudent(query.StudentID); err != nil {
		return nil, err
	}
	window, err := s.resolveWindow(query)
	if err != nil {
		return nil, err
	}
	return s.stats.Trend(query.StudentID, window)
}
