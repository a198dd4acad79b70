package controller

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{util.ErrUserNotFound, http.StatusNotFound},
		{util.ErrAttemptNotFound, http.StatusNotFound},
		{util.ErrPermissionDenied, http.StatusForbidden},
		{util.ErrInvalidCredentials, http.StatusUnauthorized},
		{util.ErrResetTokenInvalid, http.StatusUnauthorized},
		{util.ErrAttemptAlreadySubmitted, http.StatusConflict},
		{util.ErrWorkflowResolved, http.StatusConflict},
		{util.ErrEmailRegistered, http.StatusConflict},
		{util.ErrUsernameRegistered, http.StatusConflict},
		{util.ErrAssessmentNotReady, http.StatusUnprocessableEntity},
		{util.ErrNoCaptions, http.StatusUnprocessableEntity},
		{util.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{util.ErrFileTypeNotAllowed, http.StatusUnsupportedMediaType},
		{assert.AnError, http.StatusInternalServerError},
	}

	for _, c := range cases {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest("GET", "/", nil)

		respondError(ctx, c.err)

		assert.Equal(t, c.code, w.Code, "error %v", c.err)
	}
}
