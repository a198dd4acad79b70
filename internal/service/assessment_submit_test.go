package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
)

func newSubmitTestService(t *testing.T) (*AssessmentService, *repository.AssessmentRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Assessment{},
		&model.Question{},
		&model.AssessmentAttempt{},
	))

	repo := repository.NewAssessmentRepository(db)
	return NewAssessmentService(repo, nil, nil, nil, nil, nil, nil), repo
}

func seedCompletedAssessment(t *testing.T, repo *repository.AssessmentRepository, totalMarks float64) *model.Assessment {
	t.Helper()

	a := &model.Assessment{
		Title:        "Go 基础测验",
		CustomPrompt: "goroutines and channels",
		Difficulty:   model.DifficultyMedium,
		Status:       model.AssessmentCompleted,
		TotalMarks:   totalMarks,
		CourseID:     1,
		CreatedBy:    1,
	}
	require.NoError(t, repo.Create(a))
	return a
}

func TestSubmitAttemptSecondSubmissionRejected(t *testing.T) {
	svc, repo := newSubmitTestService(t)

	a := seedCompletedAssessment(t, repo, 2)
	require.NoError(t, repo.MarkCompleted(a.ID, []model.Question{
		{
			Type:          model.QuestionMCQ,
			Text:          "Which keyword starts a goroutine?",
			CorrectAnswer: model.StringAnswer("go").Raw,
			Difficulty:    model.DifficultyMedium,
			Marks:         2,
			Position:      1,
		},
	}, 2))

	attempt := &model.AssessmentAttempt{
		AssessmentID: a.ID,
		StudentID:    7,
		StartedAt:    time.Now().Add(-90 * time.Second),
		MaxScore:     2,
	}
	require.NoError(t, repo.CreateAttempt(attempt))

	questions, err := repo.FindByIDWithQuestions(a.ID)
	require.NoError(t, err)
	require.Len(t, questions.Questions, 1)
	qID := questions.Questions[0].ID

	res, err := svc.SubmitAttempt(attempt.ID, 7, map[uint]model.AnswerValue{
		qID: model.StringAnswer("go"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, res.Score)
	assert.Equal(t, 100.0, res.Percentage)
	// 1分30秒按整分钟向下取整
	assert.Equal(t, 1, res.TimeTakenMins)

	// 重复提交走不到评分, 直接拒绝
	_, err = svc.SubmitAttempt(attempt.ID, 7, map[uint]model.AnswerValue{
		qID: model.StringAnswer("defer"),
	})
	assert.ErrorIs(t, err, util.ErrAttemptAlreadySubmitted)

	// 绕过服务层直接打条件更新, submitted_at 非空时也必须零行命中
	err = repo.SubmitAttempt(attempt.ID, []byte(`{}`), 0, 0, 99)
	assert.ErrorIs(t, err, util.ErrAttemptAlreadySubmitted)

	stored, err := repo.FindAttempt(attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SubmittedAt)
	assert.Equal(t, 2.0, stored.Score)
	assert.Equal(t, 100.0, stored.Percentage)
	assert.Equal(t, 1, stored.TimeTakenMins)
}

func TestSubmitAttemptZeroMaxScorePercentage(t *testing.T) {
	svc, repo := newSubmitTestService(t)

	a := seedCompletedAssessment(t, repo, 0)

	attempt := &model.AssessmentAttempt{
		AssessmentID: a.ID,
		StudentID:    7,
		StartedAt:    time.Now(),
		MaxScore:     0,
	}
	require.NoError(t, repo.CreateAttempt(attempt))

	res, err := svc.SubmitAttempt(attempt.ID, 7, map[uint]model.AnswerValue{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)
	assert.Equal(t, 0.0, res.Percentage)
}

func TestSubmitAttemptOwnershipEnforced(t *testing.T) {
	svc, repo := newSubmitTestService(t)

	a := seedCompletedAssessment(t, repo, 0)

	attempt := &model.AssessmentAttempt{
		AssessmentID: a.ID,
		StudentID:    7,
		StartedAt:    time.Now(),
	}
	require.NoError(t, repo.CreateAttempt(attempt))

	_, err := svc.SubmitAttempt(attempt.ID, 8, nil)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
