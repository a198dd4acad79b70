package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type SlideDeckController struct {
	Service *service.SlideDeckService
}

func NewSlideDeckController(svc *service.SlideDeckService) *SlideDeckController {
	return &SlideDeckController{Service: svc}
}

// @Summary 创建幻灯片(AI生成)
// @Tags 幻灯片
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateSlideDeckInput true "生成要求"
// @Success 201 {object} util.Response
// @Router /api/slide-decks [post]
func (c *SlideDeckController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var input service.CreateSlideDeckInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deck, err := c.Service.Create(input, user.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Created(ctx, deck)
}

// @Summary 幻灯片列表
// @Tags 幻灯片
// @Produce json
// @Security BearerAuth
// @Param status query string false "按状态过滤"
// @Success 200 {object} util.Response
// @Router /api/slide-decks [get]
func (c *SlideDeckController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	status := model.DeckStatus(ctx.Query("status"))

	decks, err := c.Service.List(user.UserID, status)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, decks)
}

// @Summary 幻灯片详情
// @Tags 幻灯片
// @Produce json
// @Security BearerAuth
// @Param id path int true "幻灯片ID"
// @Success 200 {object} util.Response
// @Router /api/slide-decks/{id} [get]
func (c *SlideDeckController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	deck, err := c.Service.Get(id, user)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, deck)
}

// @Summary 编辑单页
// @Tags 幻灯片
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "幻灯片ID"
// @Param slideId path int true "单页ID"
// @Param body body service.UpdateSlideInput true "修改内容"
// @Success 200 {object} util.Response
// @Router /api/slide-decks/{id}/slides/{slideId} [put]
func (c *SlideDeckController) UpdateSlide(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	deckID := util.MustParseUint(ctx.Param("id"))
	slideID := util.MustParseUint(ctx.Param("slideId"))

	var input service.UpdateSlideInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	slide, err := c.Service.UpdateSlide(deckID, slideID, user, input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, slide)
}

// @Summary 删除幻灯片
// @Tags 幻灯片
// @Produce json
// @Security BearerAuth
// @Param id path int true "幻灯片ID"
// @Success 204
// @Router /api/slide-decks/{id} [delete]
func (c *SlideDeckController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id := util.MustParseUint(ctx.Param("id"))

	if err := c.Service.Delete(id, user); err != nil {
		respondError(ctx, err)
		return
	}

	util.NoContent(ctx)
}
