package controller

import (
	"encoding/json"
	"io"
	"strconv"

	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// WrongQuestionController 错题本核心接口：错题 CRUD 与练习记录提交
type WrongQuestionController struct {
	WrongQuestionService *service.WrongQuestionService
}

func NewWrongQuestionController(wqService *service.WrongQuestionService) *WrongQuestionController {
	return &WrongQuestionController{WrongQuestionService: wqService}
}

// CreateWrongQuestion godoc
// @Summary 录入错题
// @Description 年级缺省时从学生档案回填；绑定分类的错误原因必须与错题分类一致
// @Tags 错题本
// @Accept json
// @Produce json
// @Param request body service.CreateWrongQuestionInput true "错题信息"
// @Success 201 {object} util.Response{data=model.WrongQuestion} "创建成功"
// @Failure 400 {object} util.Response "参数错误或原因分类不一致"
// @Failure 404 {object} util.Response "学生/学科/分类/原因不存在"
// @Router /api/wrong-questions [post]
func (c *WrongQuestionController) CreateWrongQuestion(ctx *gin.Context) {
	var input service.CreateWrongQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "studentId and content are required")
		return
	}

	question, err := c.WrongQuestionService.CreateWrongQuestion(input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListWrongQuestions godoc
// @Summary 错题列表
// @Tags 错题本
// @Produce json
// @Param studentId query int false "学生ID"
// @Param subjectId query int false "学科ID"
// @Param grade query string false "年级"
// @Param status query string false "状态 new/reviewing/mastered"
// @Param categoryId query int false "分类ID"
// @Param errorReasonId query int false "错误原因ID"
// @Param isBookmarked query bool false "只看收藏"
// @Param keyword query string false "标题/内容/备注关键词"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Router /api/wrong-questions [get]
func (c *WrongQuestionController) ListWrongQuestions(ctx *gin.Context) {
	offset, limit := parsePagination(ctx)
	filter := repository.WrongQuestionFilter{
		StudentID:     parseOptionalUintQuery(ctx, "studentId"),
		SubjectID:     parseOptionalUintQuery(ctx, "subjectId"),
		Grade:         ctx.Query("grade"),
		Status:        ctx.Query("status"),
		CategoryID:    parseOptionalUintQuery(ctx, "categoryId"),
		ErrorReasonID: parseOptionalUintQuery(ctx, "errorReasonId"),
		Keyword:       ctx.Query("keyword"),
		Offset:        offset,
		Limit:         limit,
	}
	if raw := ctx.Query("isBookmarked"); raw != "" {
		bookmarked, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid isBookmarked")
			return
		}
		filter.IsBookmarked = &bookmarked
	}

	questions, total, err := c.WrongQuestionService.ListWrongQuestions(filter)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": questions})
}

// GetWrongQuestion godoc
// @Summary 错题详情
// @Tags 错题本
// @Produce json
// @Param id path int true "错题ID"
// @Success 200 {object} util.Response{data=model.WrongQuestion} "成功"
// @Failure 404 {object} util.Response "错题不存在"
// @Router /api/wrong-questions/{id} [get]
func (c *WrongQuestionController) GetWrongQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	question, err := c.WrongQuestionService.GetWrongQuestion(id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// UpdateWrongQuestion godoc
// @Summary 更新错题
// @Description 部分更新；提交 errorReasonIds 时整体替换原因链接
// @Tags 错题本
// @Accept json
// @Produce json
// @Param id path int true "错题ID"
// @Param request body service.UpdateWrongQuestionInput true "更新内容"
// @Success 200 {object} util.Response{data=model.WrongQuestion} "成功"
// @Failure 400 {object} util.Response "参数错误或原因分类不一致"
// @Failure 404 {object} util.Response "错题不存在"
// @Router /api/wrong-questions/{id} [put]
func (c *WrongQuestionController) UpdateWrongQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "cannot read request body")
		return
	}

	var input service.UpdateWrongQuestionInput
	if err := json.Unmarshal(body, &input); err != nil {
		util.BadRequest(ctx, "invalid request body: "+err.Error())
		return
	}

	// categoryId: null（清空分类）和未提交要区分开，errorReasonIds 同理
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		_, input.HasReasonUpdate = fields["errorReasonIds"]
		_, input.HasCategoryUpdate = fields["categoryId"]
	}

	question, err := c.WrongQuestionService.UpdateWrongQuestion(id, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteWrongQuestion godoc
// @Summary 删除错题
// @Description 级联删除原因链接与练习记录
// @Tags 错题本
// @Param id path int true "错题ID"
// @Success 204 "删除成功"
// @Failure 404 {object} util.Response "错题不存在"
// @Router /api/wrong-questions/{id} [delete]
func (c *WrongQuestionController) DeleteWrongQuestion(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	if err := c.WrongQuestionService.DeleteWrongQuestion(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.NoContent(ctx)
}

// CreateStudyRecord godoc
// @Summary 提交练习记录
// @Description 追加一次练习并推进错题状态：答错回到 reviewing 并累计错误次数，答对且掌握度≥4 判定已掌握
// @Tags 错题本
// @Accept json
// @Produce json
// @Param id path int true "错题ID"
// @Param request body service.CreateStudyRecordInput true "练习结果"
// @Success 201 {object} util.Response{data=model.StudyRecord} "创建成功"
// @Failure 400 {object} util.Response "参数错误"
// @Failure 404 {object} util.Response "错题不存在"
// @Router /api/wrong-questions/{id}/study-records [post]
func (c *WrongQuestionController) CreateStudyRecord(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var input service.CreateStudyRecordInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, "result is required")
		return
	}

	record, err := c.WrongQuestionService.CreateStudyRecord(id, input)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, record)
}

// ListStudyRecords godoc
// @Summary 错题的练习记录列表
// @Tags 错题本
// @Produce json
// @Param id path int true "错题ID"
// @Param offset query int false "偏移量" default(0)
// @Param limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "错题不存在"
// @Router /api/wrong-questions/{id}/study-records [get]
func (c *WrongQuestionController) ListStudyRecords(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	offset, limit := parsePagination(ctx)

	records, total, err := c.WrongQuestionService.ListStudyRecords(id, offset, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"total": total, "items": records})
}
