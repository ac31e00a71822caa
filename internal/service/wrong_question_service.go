package service

import (
	"errors"
	"time"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 连续答对达到该掌握度即判定为已掌握
const masteredThreshold = 4

type WrongQuestionService struct {
	questions  *repository.WrongQuestionRepository
	records    *repository.StudyRecordRepository
	users      *repository.UserRepository
	subjects   *repository.SubjectRepository
	categories *repository.CategoryRepository
	reasons    *repository.ErrorReasonRepository
	papers     *repository.PaperRepository
	sources    *repository.QuestionRepository
	db         *gorm.DB
}

func NewWrongQuestionService(
	questions *repository.WrongQuestionRepository,
	records *repository.StudyRecordRepository,
	users *repository.UserRepository,
	subjects *repository.SubjectRepository,
	categories *repository.CategoryRepository,
	reasons *repository.ErrorReasonRepository,
	papers *repository.PaperRepository,
	sources *repository.QuestionRepository,
	db *gorm.DB,
) *WrongQuestionService {
	return &WrongQuestionService{
		questions:  questions,
		records:    records,
		users:      users,
		subjects:   subjects,
		categories: categories,
		reasons:    reasons,
		papers:     papers,
		sources:    sources,
		db:         db,
	}
}

type CreateWrongQuestionInput struct {
	StudentID       uint    `json:"studentId" binding:"required"`
	CreatedByUserID *uint   `json:"createdByUserId"`
	PaperID         *uint   `json:"paperId"`
	QuestionID      *uint   `json:"questionId"`
	Title           string  `json:"title"`
	Content         string  `json:"content" binding:"required"`
	SubjectID       *uint   `json:"subjectId"`
	Grade           string  `json:"grade"`
	QuestionType    string  `json:"questionType"`
	Difficulty      string  `json:"difficulty"`
	CategoryID      *uint   `json:"categoryId"`
	Source          string  `json:"source"`
	Notes           string  `json:"notes"`
	FirstErrorDate  string  `json:"firstErrorDate"`
	ErrorReasonIDs  []uint  `json:"errorReasonIds"`
	IsBookmarked    bool    `json:"isBookmarked"`
}

func (s *WrongQuestionService) CreateWrongQuestion(input CreateWrongQuestionInput) (*model.WrongQuestion, error) {
	student, err := s.users.FindByID(input.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("student")
		}
		return nil, err
	}
	if student.Role != model.RoleStudent {
		return nil, util.RoleMismatchError("studentId must reference a user with role=student")
	}

	// 年级缺省时从学生档案回填
	grade := input.Grade
	if grade == "" {
		if student.StudentProfile == nil || student.StudentProfile.Grade == "" {
			return nil, util.InvalidError("grade is required: student has no profile grade to inherit")
		}
		grade = student.StudentProfile.Grade
	}

	if input.SubjectID != nil {
		if _, err := s.subjects.FindByID(*input.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("subject")
			}
			return nil, err
		}
	}
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("category")
			}
			return nil, err
		}
	}

	difficulty := input.Difficulty
	if difficulty == "" {
		difficulty = string(model.DifficultyMedium)
	}
	if !model.ValidDifficulty(difficulty) {
		return nil, util.InvalidError("invalid difficulty '%s'", difficulty)
	}

	firstErrorDate := util.TruncateToDate(time.Now())
	if input.FirstErrorDate != "" {
		parsed, err := util.ParseDate(input.FirstErrorDate)
		if err != nil {
			return nil, util.InvalidError("invalid firstErrorDate, expect YYYY-MM-DD")
		}
		firstErrorDate = util.TruncateToDate(parsed)
	}

	reasonIDs, err := s.validateReasons(input.ErrorReasonIDs, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := s.validateSourceReferences(input.PaperID, input.QuestionID, input.CreatedByUserID); err != nil {
		return nil, err
	}

	source := input.Source
	if source == "" {
		source = "manual"
	}

	question := &model.WrongQuestion{
		StudentID:       input.StudentID,
		CreatedByUserID: input.CreatedByUserID,
		PaperID:         input.PaperID,
		QuestionID:      input.QuestionID,
		Title:           input.Title,
		Content:         input.Content,
		SubjectID:       input.SubjectID,
		Grade:           grade,
		QuestionType:    input.QuestionType,
		Difficulty:      model.Difficulty(difficulty),
		CategoryID:      input.CategoryID,
		Status:          model.StatusNew,
		Source:          source,
		ErrorCount:      1,
		IsBookmarked:    input.IsBookmarked,
		Notes:           input.Notes,
		FirstErrorDate:  firstErrorDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return err
		}
		return replaceReasonLinks(tx, question.ID, reasonIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.questions.FindByID(question.ID)
}

// validateReasons 去重并校验原因存在性与分类一致性：
// 绑定了分类的原因只能挂到同分类的错题上
func (s *WrongQuestionService) validateReasons(ids []uint, categoryID *uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	seen := make(map[uint]bool, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	reasons, err := s.reasons.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(reasons) != len(unique) {
		return nil, util.NotFoundError("error reason")
	}
	for _, reason := range reasons {
		if reason.CategoryID == nil {
			continue
		}
		if categoryID == nil || *categoryID != *reason.CategoryID {
			return nil, util.InvalidError(
				"error reason '%s' belongs to a different category than the wrong question", reason.Name)
		}
	}
	return unique, nil
}

// validateSourceReferences 校验来源引用：挂了试卷/原题/录入人时对应记录必须存在
func (s *WrongQuestionService) validateSourceReferences(paperID, questionID, createdBy *uint) error {
	if paperID != nil {
		exists, err := s.papers.Exists(*paperID)
		if err != nil {
			return err
		}
		if !exists {
			return util.NotFoundError("paper")
		}
	}
	if questionID != nil {
		exists, err := s.sources.Exists(*questionID)
		if err != nil {
			return err
		}
		if !exists {
			return util.NotFoundError("question")
		}
	}
	if createdBy != nil {
		if _, err := s.users.FindByID(*createdBy); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("createdBy user")
			}
			return err
		}
	}
	return nil
}

func replaceReasonLinks(tx *gorm.DB, questionID uint, reasonIDs []uint) error {
	if err := tx.Where("wrong_question_id = ?", questionID).
		Delete(&model.WrongQuestionErrorReason{}).Error; err != nil {
		return err
	}
	if len(reasonIDs) == 0 {
		return nil
	}
	links := make([]model.WrongQuestionErrorReason, 0, len(reasonIDs))
	for _, reasonID := range reasonIDs {
		links = append(links, model.WrongQuestionErrorReason{
			WrongQuestionID: questionID,
			ErrorReasonID:   reasonID,
		})
	}
	return tx.Create(&links).Error
}

func (s *WrongQuestionService) GetWrongQuestion(id uint) (*model.WrongQuestion, error) {
	question, err := s.questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("wrong question")
		}
		return nil, err
	}
	return question, nil
}

func (s *WrongQuestionService) ListWrongQuestions(filter repository.WrongQuestionFilter) ([]model.WrongQuestion, int64, error) {
	if filter.Status != "" && !model.ValidWrongQuestionStatus(filter.Status) {
		return nil, 0, util.InvalidError("invalid status '%s'", filter.Status)
	}
	return s.questions.List(filter)
}

type UpdateWrongQuestionInput struct {
	Title          *string `json:"title"`
	Content        *string `json:"content"`
	SubjectID      *uint   `json:"subjectId"`
	Grade          *string `json:"grade"`
	QuestionType   *string `json:"questionType"`
	Difficulty     *string `json:"difficulty"`
	Status         *string `json:"status"`
	CategoryID     *uint   `json:"categoryId"`
	Notes          *string `json:"notes"`
	IsBookmarked   *bool   `json:"isBookmarked"`
	ErrorReasonIDs []uint  `json:"errorReasonIds"`
	// HasReasonUpdate 区分“未提交原因列表”与“显式清空”
	HasReasonUpdate   bool `json:"-"`
	HasCategoryUpdate bool `json:"-"`
}

func (s *WrongQuestionService) UpdateWrongQuestion(id uint, input UpdateWrongQuestionInput) (*model.WrongQuestion, error) {
	question, err := s.GetWrongQuestion(id)
	if err != nil {
		return nil, err
	}

	if input.SubjectID != nil {
		if _, err := s.subjects.FindByID(*input.SubjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("subject")
			}
			return nil, err
		}
		question.SubjectID = input.SubjectID
	}

	categoryAfter := question.CategoryID
	if input.HasCategoryUpdate {
		categoryAfter = input.CategoryID
		if categoryAfter != nil {
			if _, err := s.categories.FindByID(*categoryAfter); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, util.NotFoundError("category")
				}
				return nil, err
			}
		}
	}

	// 原因列表未提交时，仍需用改动后的分类复核既有链接
	reasonIDs := make([]uint, 0, len(question.ReasonLinks))
	if input.HasReasonUpdate {
		reasonIDs = input.ErrorReasonIDs
	} else {
		for _, link := range question.ReasonLinks {
			reasonIDs = append(reasonIDs, link.ErrorReasonID)
		}
	}
	validated, err := s.validateReasons(reasonIDs, categoryAfter)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		question.Title = *input.Title
	}
	if input.Content != nil {
		if *input.Content == "" {
			return nil, util.InvalidError("content cannot be empty")
		}
		question.Content = *input.Content
	}
	if input.Grade != nil {
		if *input.Grade == "" {
			return nil, util.InvalidError("grade cannot be empty")
		}
		question.Grade = *input.Grade
	}
	if input.QuestionType != nil {
		question.QuestionType = *input.QuestionType
	}
	if input.Difficulty != nil {
		if !model.ValidDifficulty(*input.Difficulty) {
			return nil, util.InvalidError("invalid difficulty '%s'", *input.Difficulty)
		}
		question.Difficulty = model.Difficulty(*input.Difficulty)
	}
	// 手工改状态绕过练习记录的派生字段副作用
	if input.Status != nil {
		if !model.ValidWrongQuestionStatus(*input.Status) {
			return nil, util.InvalidError("invalid status '%s'", *input.Status)
		}
		question.Status = model.WrongQuestionStatus(*input.Status)
	}
	if input.Notes != nil {
		question.Notes = *input.Notes
	}
	if input.IsBookmarked != nil {
		question.IsBookmarked = *input.IsBookmarked
	}
	question.CategoryID = categoryAfter

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Student", "Subject", "Category", "ReasonLinks").
			Save(question).Error; err != nil {
			return err
		}
		if input.HasReasonUpdate {
			return replaceReasonLinks(tx, question.ID, validated)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.questions.FindByID(id)
}

func (s *WrongQuestionService) DeleteWrongQuestion(id uint) error {
	if _, err := s.GetWrongQuestion(id); err != nil {
		return err
	}
	return s.questions.Delete(id)
}

type CreateStudyRecordInput struct {
	StudentID        *uint  `json:"studentId"`
	ReviewerUserID   *uint  `json:"reviewerUserId"`
	StudyDate        string `json:"studyDate"`
	Result           string `json:"result" binding:"required"`
	TimeSpentSeconds *int   `json:"timeSpentSeconds"`
	MasteryLevel     *int   `json:"masteryLevel"`
	Notes            string `json:"notes"`
}

// CreateStudyRecord 提交一次练习并原子地推进错题状态机：
// 答错计入错误次数并回到 reviewing，答对且掌握度达标判定 mastered，
// 跳过仅刷新复习时间。
func (s *WrongQuestionService) CreateStudyRecord(wrongQuestionID uint, input CreateStudyRecordInput) (*model.StudyRecord, error) {
	question, err := s.GetWrongQuestion(wrongQuestionID)
	if err != nil {
		return nil, err
	}

	// 记录不能声明别的归属人
	if input.StudentID != nil && *input.StudentID != question.StudentID {
		return nil, util.InvalidError("studyRecord studentId must match the wrong question's studentId")
	}
	if input.ReviewerUserID != nil {
		if _, err := s.users.FindByID(*input.ReviewerUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("reviewer user")
			}
			return nil, err
		}
	}

	if !model.ValidStudyResult(input.Result) {
		return nil, util.InvalidError("invalid result '%s'", input.Result)
	}
	result := model.StudyResult(input.Result)

	// 掌握度随任意结果提交，但只有答对时才参与状态判定
	if input.MasteryLevel != nil && (*input.MasteryLevel < 1 || *input.MasteryLevel > 5) {
		return nil, util.InvalidError("masteryLevel must be between 1 and 5")
	}
	if input.TimeSpentSeconds != nil && *input.TimeSpentSeconds < 0 {
		return nil, util.InvalidError("timeSpentSeconds cannot be negative")
	}

	studyDate := util.TruncateToDate(time.Now())
	if input.StudyDate != "" {
		parsed, err := util.ParseDate(input.StudyDate)
		if err != nil {
			return nil, util.InvalidError("invalid studyDate, expect YYYY-MM-DD")
		}
		studyDate = util.TruncateToDate(parsed)
	}

	record := &model.StudyRecord{
		WrongQuestionID:  question.ID,
		StudentID:        question.StudentID,
		ReviewerUserID:   input.ReviewerUserID,
		StudyDate:        studyDate,
		Result:           result,
		TimeSpentSeconds: input.TimeSpentSeconds,
		MasteryLevel:     input.MasteryLevel,
		Notes:            input.Notes,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		applyStudyResult(question, record)
		return tx.Omit("Student", "Subject", "Category", "ReasonLinks").
			Save(question).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Study record submitted",
		zap.Uint("wrongQuestionId", question.ID),
		zap.String("result", string(result)),
		zap.String("status", string(question.Status)))
	return record, nil
}

// applyStudyResult 把单次练习结果折算到错题的派生字段上
func applyStudyResult(question *model.WrongQuestion, record *model.StudyRecord) {
	reviewDate := record.StudyDate
	question.LastReviewDate = &reviewDate
	question.LastPracticeResult = string(record.Result)

	switch record.Result {
	case model.ResultIncorrect:
		question.ErrorCount++
		question.Status = model.StatusReviewing
	case model.ResultCorrect:
		if record.MasteryLevel != nil && *record.MasteryLevel >= masteredThreshold {
			question.Status = model.StatusMastered
		} else if question.Status == model.StatusNew {
			question.Status = model.StatusReviewing
		}
	case model.ResultSkipped:
		// 仅刷新复习时间，状态与错误次数不动
	}
}

func (s *WrongQuestionService) ListStudyRecords(wrongQuestionID uint, offset, limit int) ([]model.StudyRecord, int64, error) {
	if _, err := s.GetWrongQuestion(wrongQuestionID); err != nil {
		return nil, 0, err
	}
	return s.records.ListByWrongQuestion(wrongQuestionID, offset, limit)
}
