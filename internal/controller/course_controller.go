package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/service"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary 创建课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateCourseInput true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var input service.CreateCourseInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.Service.Create(input)
	if err != nil {
		if course != nil {
			util.Conflict(ctx, err.Error())
			return
		}
		respondError(ctx, err)
		return
	}

	util.Created(ctx, course)
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.Service.List()
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, courses)
}
