package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type StudyGuideController struct {
	Service *service.StudyGuideService
}

func NewStudyGuideController(svc *service.StudyGuideService) *StudyGuideController {
	return &StudyGuideController{Service: svc}
}

// @Summary 视频信息与字幕可用性
// @Tags 学习指南
// @Produce json
// @Security BearerAuth
// @Param url query string true "YouTube链接"
// @Success 200 {object} util.Response
// @Router /api/study-guides/video-info [get]
func (c *StudyGuideController) VideoInfo(ctx *gin.Context) {
	rawURL := ctx.Query("url")
	if rawURL == "" {
		util.BadRequest(ctx, "url is required")
		return
	}

	info, err := c.Service.VideoInfo(ctx.Request.Context(), rawURL)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, info)
}

// @Summary 视频字幕
// @Tags 学习指南
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "视频ID"
// @Param start query number false "窗口起点(秒)"
// @Param end query number false "窗口终点(秒)"
// @Success 200 {object} util.Response
// @Router /api/study-guides/transcript/{videoId} [get]
func (c *StudyGuideController) Transcript(ctx *gin.Context) {
	videoID := ctx.Param("videoId")
	start, _ := strconv.ParseFloat(ctx.Query("start"), 64)
	end, _ := strconv.ParseFloat(ctx.Query("end"), 64)

	entries, err := c.Service.Transcript(ctx.Request.Context(), videoID, start, end)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}

// @Summary 创建学习指南
// @Tags 学习指南
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateStudyGuideInput true "视频与重点时间段"
// @Success 201 {object} util.Response
// @Router /api/study-guides [post]
func (c *StudyGuideController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var input service.CreateStudyGuideInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	guide, err := c.Service.Create(ctx.Request.Context(), input, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 生成是异步的, 客户端轮询状态
	util.Created(ctx, guide)
}

// @Summary 指南详情
// @Tags 学习指南
// @Produce json
// @Security BearerAuth
// @Param id path int true "指南ID"
// @Success 200 {object} util.Response
// @Router /api/study-guides/{id} [get]
func (c *StudyGuideController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	guide, err := c.Service.Get(id, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, guide)
}

// @Summary 指南列表
// @Tags 学习指南
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "按课程过滤(教师端)"
// @Success 200 {object} util.Response
// @Router /api/study-guides [get]
func (c *StudyGuideController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	courseID := util.MustParseUint(ctx.Query("courseId"))

	guides, err := c.Service.List(user, courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, guides)
}

// @Summary 删除指南
// @Tags 学习指南
// @Produce json
// @Security BearerAuth
// @Param id path int true "指南ID"
// @Success 204
// @Router /api/study-guides/{id} [delete]
func (c *StudyGuideController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id, user); err != nil {
		respondError(ctx, err)
		return
	}

	util.NoContent(ctx)
}
