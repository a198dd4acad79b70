package controller

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type KnowledgeController struct {
	Documents *service.DocumentService
	Chat      *service.ChatService
}

func NewKnowledgeController(documents *service.DocumentService, chat *service.ChatService) *KnowledgeController {
	return &KnowledgeController{Documents: documents, Chat: chat}
}

// @Summary 上传参考文档
// @Tags 知识库
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "PDF或纯文本文件"
// @Param title formData string false "文档标题, 缺省用文件名"
// @Param courseId formData int false "课程ID"
// @Success 201 {object} util.Response
// @Router /api/knowledge/documents [post]
func (c *KnowledgeController) UploadDocument(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		title = fileHeader.Filename
	}
	courseID := util.MustParseUint(ctx.PostForm("courseId"))

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	doc, err := c.Documents.Upload(ctx.Request.Context(),
		title,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		courseID,
		user.UserID,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, doc)
}

// @Summary 文档列表
// @Tags 知识库
// @Produce json
// @Security BearerAuth
// @Param courseId query int false "按课程过滤"
// @Success 200 {object} util.Response
// @Router /api/knowledge/documents [get]
func (c *KnowledgeController) ListDocuments(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Query("courseId"))

	docs, err := c.Documents.List(courseID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, docs)
}

// @Summary 下载文档
// @Tags 知识库
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "文档ID"
// @Success 200
// @Router /api/knowledge/documents/{id}/download [get]
func (c *KnowledgeController) DownloadDocument(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	doc, reader, err := c.Documents.Download(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer reader.Close()

	ctx.Header("Content-Disposition", "attachment; filename=\""+doc.Title+"\"")
	ctx.Header("Content-Type", doc.FileType)
	if _, err := io.Copy(ctx.Writer, reader); err != nil {
		// 响应已经开始写, 只能记日志
		_ = ctx.Error(err)
	}
}

// @Summary 删除文档
// @Tags 知识库
// @Produce json
// @Security BearerAuth
// @Param id path int true "文档ID"
// @Success 204
// @Router /api/knowledge/documents/{id} [delete]
func (c *KnowledgeController) DeleteDocument(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Documents.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	util.NoContent(ctx)
}

type createConversationRequest struct {
	CourseID uint `json:"courseId"`
}

// @Summary 创建会话
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body createConversationRequest true "课程ID"
// @Success 201 {object} util.Response
// @Router /api/knowledge/conversations [post]
func (c *KnowledgeController) CreateConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req createConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.Chat.CreateConversation(user.UserID, req.CourseID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, conv)
}

// @Summary 会话列表
// @Tags 知识库
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/knowledge/conversations [get]
func (c *KnowledgeController) ListConversations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	convs, err := c.Chat.ListConversations(user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, convs)
}

// @Summary 会话详情(含消息)
// @Tags 知识库
// @Produce json
// @Security BearerAuth
// @Param id path int true "会话ID"
// @Success 200 {object} util.Response
// @Router /api/knowledge/conversations/{id} [get]
func (c *KnowledgeController) GetConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	conv, err := c.Chat.GetConversation(id, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, conv)
}

type updateStatusRequest struct {
	Status model.ConversationStatus `json:"status" binding:"required"`
}

// @Summary 更新会话状态
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "会话ID"
// @Param body body updateStatusRequest true "目标状态"
// @Success 200 {object} util.Response
// @Router /api/knowledge/conversations/{id}/status [patch]
func (c *KnowledgeController) UpdateConversationStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	var req updateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !req.Status.Valid() {
		util.BadRequest(ctx, "invalid status")
		return
	}

	if err := c.Chat.UpdateStatus(id, req.Status, user); err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": req.Status})
}

type chatRequest struct {
	ConversationID uint   `json:"conversationId" binding:"required"`
	Question       string `json:"question" binding:"required"`
}

// @Summary 课程问答
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body chatRequest true "会话ID与问题"
// @Success 200 {object} util.Response
// @Router /api/knowledge/chat [post]
func (c *KnowledgeController) PostChat(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.Chat.Ask(ctx.Request.Context(), req.ConversationID, user, req.Question)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, reply)
}

type taReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// @Summary TA人工回复
// @Tags 知识库
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "会话ID"
// @Param body body taReplyRequest true "回复内容"
// @Success 201 {object} util.Response
// @Router /api/knowledge/conversations/{id}/reply [post]
func (c *KnowledgeController) TAReply(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))

	var req taReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.Chat.TAReply(id, req.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, msg)
}
