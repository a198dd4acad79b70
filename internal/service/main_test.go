package service

import (
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}
