package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// @Summary 创建测验(AI出题)
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateAssessmentInput true "出题要求"
// @Success 201 {object} util.Response
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var input service.CreateAssessmentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assessment, err := c.Service.Create(input, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 出题是异步的, 客户端拿到GENERATING状态后轮询详情
	util.Created(ctx, assessment)
}

// @Summary 测验列表
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "按课程过滤"
// @Success 200 {object} util.Response
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Query("courseId"))

	list, err := c.Service.List(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, list)
}

// @Summary 测验详情
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	assessment, err := c.Service.Get(id, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, assessment)
}

// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 204
// @Router /api/assessments/{id} [delete]
func (c *AssessmentController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id, user); err != nil {
		respondError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

// @Summary 开始作答
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 201 {object} util.Response
// @Router /api/assessments/{id}/attempts [post]
func (c *AssessmentController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	attempt, err := c.Service.StartAttempt(id, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, attempt)
}

type submitAttemptRequest struct {
	Answers map[uint]model.AnswerValue `json:"answers" binding:"required"`
}

// @Summary 提交答卷
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "答卷ID"
// @Param body body submitAttemptRequest true "题目ID到答案的映射"
// @Success 200 {object} util.Response
// @Router /api/assessments/attempts/{id}/submit [post]
func (c *AssessmentController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req submitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitAttempt(id, user.UserID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 我的答卷
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/assessments/my-attempts [get]
func (c *AssessmentController) MyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	attempts, err := c.Service.MyAttempts(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 测验的全部答卷(教师端)
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/assessments/{id}/attempts [get]
func (c *AssessmentController) AttemptsByAssessment(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	attempts, err := c.Service.AttemptsByAssessment(id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}
