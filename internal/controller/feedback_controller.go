package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type FeedbackController struct {
	Service *service.FeedbackService
}

func NewFeedbackController(svc *service.FeedbackService) *FeedbackController {
	return &FeedbackController{Service: svc}
}

// @Summary 提交反馈
// @Tags 反馈
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateFeedbackInput true "评分与评论"
// @Success 201 {object} util.Response
// @Router /api/feedback [post]
func (c *FeedbackController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var input service.CreateFeedbackInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	fb, err := c.Service.Create(input, user.UserID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, fb)
}

// @Summary 按目标查看反馈
// @Tags 反馈
// @Produce json
// @Security BearerAuth
// @Param targetType query string false "目标类型"
// @Param targetId query int false "目标ID"
// @Success 200 {object} util.Response
// @Router /api/feedback [get]
func (c *FeedbackController) List(ctx *gin.Context) {
	targetType := model.FeedbackTarget(ctx.Query("targetType"))
	targetID := util.MustParseUint(ctx.Query("targetId"))

	list, err := c.Service.ListByTarget(targetType, targetID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, list)
}

// @Summary 我提交的反馈
// @Tags 反馈
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/feedback/mine [get]
func (c *FeedbackController) Mine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	list, err := c.Service.ListByUser(user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, list)
}

// @Summary 反馈统计
// @Tags 反馈
// @Produce json
// @Security BearerAuth
// @Param targetType query string false "目标类型"
// @Success 200 {object} util.Response
// @Router /api/feedback/summary [get]
func (c *FeedbackController) Summary(ctx *gin.Context) {
	targetType := model.FeedbackTarget(ctx.Query("targetType"))

	summary, err := c.Service.Summary(targetType)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
