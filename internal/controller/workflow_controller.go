package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type WorkflowController struct {
	Service *service.WorkflowService
}

func NewWorkflowController(svc *service.WorkflowService) *WorkflowController {
	return &WorkflowController{Service: svc}
}

// @Summary 提交流程申请
// @Tags 管理流程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateWorkflowInput true "申请内容"
// @Success 201 {object} util.Response
// @Router /api/workflow-requests [post]
func (c *WorkflowController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var input service.CreateWorkflowInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req, err := c.Service.Create(input, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// agent预审是异步的
	util.Created(ctx, req)
}

// @Summary 申请列表
// @Tags 管理流程
// @Produce json
// @Security BearerAuth
// @Param status query string false "按状态过滤(管理端)"
// @Success 200 {object} util.Response
// @Router /api/workflow-requests [get]
func (c *WorkflowController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	status := model.WorkflowStatus(ctx.Query("status"))

	reqs, err := c.Service.List(user, status)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, reqs)
}

// @Summary 申请详情
// @Tags 管理流程
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Success 200 {object} util.Response
// @Router /api/workflow-requests/{id} [get]
func (c *WorkflowController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	req, err := c.Service.Get(id, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, req)
}

// @Summary 管理员裁决
// @Tags 管理流程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param body body service.AdminDecisionInput true "裁决"
// @Success 200 {object} util.Response
// @Router /api/workflow-requests/{id}/decision [post]
func (c *WorkflowController) Decide(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var input service.AdminDecisionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	req, err := c.Service.Decide(id, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, req)
}
