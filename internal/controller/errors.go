package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"gorm.io/gorm"
)

// respondError 业务错误到HTTP状态码的统一映射
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrResetTokenInvalid):
		util.Unauthorized(ctx)
	case errors.Is(err, util.ErrAttemptAlreadySubmitted),
		errors.Is(err, util.ErrWorkflowResolved):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrUsernameRegistered):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAssessmentNotReady),
		errors.Is(err, util.ErrNoCaptions):
		util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, util.ErrFileTooLarge):
		util.Error(ctx, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, util.ErrFileTypeNotAllowed):
		util.Error(ctx, http.StatusUnsupportedMediaType, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
