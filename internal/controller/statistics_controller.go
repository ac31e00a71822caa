package controller

import (
	"wrongbook_backend/internal/service"
	"wrongbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// StatisticsController 学生维度的错题与练习统计
type StatisticsController struct {
	StatisticsService *service.StatisticsService
}

func NewStatisticsController(statService *service.StatisticsService) *StatisticsController {
	return &StatisticsController{StatisticsService: statService}
}

func (c *StatisticsController) parseQuery(ctx *gin.Context) (service.StatQuery, bool) {
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return service.StatQuery{}, false
	}
	return service.StatQuery{
		StudentID: studentID,
		StartDate: ctx.Query("startDate"),
		EndDate:   ctx.Query("endDate"),
	}, true
}

// Overview godoc
// @Summary 错题总览
// @Description 总量、状态分布、收藏数、累计错误次数、练习次数；时间窗口按首错日期过滤
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=service.Overview} "成功"
// @Failure 404 {object} util.Response "学生不存在"
// @Router /api/statistics/{studentId}/overview [get]
func (c *StatisticsController) Overview(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	overview, err := c.StatisticsService.GetOverview(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// BySubject godoc
// @Summary 按学科统计
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response "成功"
// @Router /api/statistics/{studentId}/by-subject [get]
func (c *StatisticsController) BySubject(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	rows, err := c.StatisticsService.BySubject(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ByGrade godoc
// @Summary 按年级统计
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response "成功"
// @Router /api/statistics/{studentId}/by-grade [get]
func (c *StatisticsController) ByGrade(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	rows, err := c.StatisticsService.ByGrade(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ByCategory godoc
// @Summary 按错题分类统计
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response "成功"
// @Router /api/statistics/{studentId}/by-category [get]
func (c *StatisticsController) ByCategory(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	rows, err := c.StatisticsService.ByCategory(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// ByErrorReason godoc
// @Summary 按错误原因统计
// @Description 一道错题链接 N 个原因时分别计入 N 个原因桶
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response "成功"
// @Router /api/statistics/{studentId}/by-error-reason [get]
func (c *StatisticsController) ByErrorReason(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	rows, err := c.StatisticsService.ByErrorReason(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// Trend godoc
// @Summary 练习趋势
// @Description 按练习日期逐日统计对错次数；时间窗口按练习日期过滤
// @Tags 统计
// @Produce json
// @Param studentId path int true "学生ID"
// @Param startDate query string false "开始日期 YYYY-MM-DD"
// @Param endDate query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response "成功"
// @Router /api/statistics/{studentId}/trend [get]
func (c *StatisticsController) Trend(ctx *gin.Context) {
	query, ok := c.parseQuery(ctx)
	if !ok {
		return
	}
	rows, err := c.StatisticsService.Trend(query)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
