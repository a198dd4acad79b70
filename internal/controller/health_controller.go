package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"gorm.io/gorm"
)

type HealthController struct {
	DB      *gorm.DB
	Version string
}

func NewHealthController(db *gorm.DB, version string) *HealthController {
	return &HealthController{DB: db, Version: version}
}

// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := c.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, util.Response{
		Code:    code,
		Message: status,
		Data: gin.H{
			"database": dbStatus,
			"time":     time.Now().Format(time.RFC3339),
		},
	})
}

// @Summary 服务信息
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	util.Success(ctx, gin.H{
		"name":    "EduAssist API",
		"version": c.Version,
		"docs":    "/swagger/index.html",
	})
}
