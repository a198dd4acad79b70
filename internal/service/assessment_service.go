package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/jobs"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	repo    *repository.AssessmentRepository
	docRepo *repository.DocumentRepository
	ai      AIClient
	rag     *RAGService
	storage StorageService
	queue   *jobs.Queue
	config  *config.Config
}

func NewAssessmentService(
	repo *repository.AssessmentRepository,
	docRepo *repository.DocumentRepository,
	ai AIClient,
	rag *RAGService,
	storage StorageService,
	queue *jobs.Queue,
	cfg *config.Config,
) *AssessmentService {
	return &AssessmentService{
		repo:    repo,
		docRepo: docRepo,
		ai:      ai,
		rag:     rag,
		storage: storage,
		queue:   queue,
		config:  cfg,
	}
}

type CreateAssessmentInput struct {
	Title          string                `json:"title" binding:"required"`
	Description    string                `json:"description"`
	CustomPrompt   string                `json:"customPrompt" binding:"required"`
	Difficulty     model.DifficultyLevel `json:"difficulty"`
	QuestionTypes  []model.QuestionType  `json:"questionTypes"`
	TotalQuestions int                   `json:"totalQuestions"`
	DurationMins   int                   `json:"durationMins"`
	CourseID       uint                  `json:"courseId"`
	DocumentIDs    []uint                `json:"documentIds"`
}

// Create 先落库GENERATING占位, 出题任务进队列异步执行
func (s *AssessmentService) Create(input CreateAssessmentInput, createdBy uint) (*model.Assessment, error) {
	if input.Difficulty == "" {
		input.Difficulty = model.DifficultyMedium
	}
	if !input.Difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty: %s", input.Difficulty)
	}
	if len(input.QuestionTypes) == 0 {
		input.QuestionTypes = []model.QuestionType{model.QuestionMCQ}
	}
	for _, t := range input.QuestionTypes {
		if !t.Valid() {
			return nil, fmt.Errorf("invalid question type: %s", t)
		}
	}
	if input.TotalQuestions <= 0 {
		input.TotalQuestions = 5
	}
	if input.DurationMins <= 0 {
		input.DurationMins = 30
	}

	rawTypes, _ := json.Marshal(input.QuestionTypes)
	rawDocIDs, _ := json.Marshal(input.DocumentIDs)

	assessment := &model.Assessment{
		Title:           input.Title,
		Description:     input.Description,
		CustomPrompt:    input.CustomPrompt,
		Difficulty:      input.Difficulty,
		QuestionTypes:   rawTypes,
		TotalQuestions:  input.TotalQuestions,
		Status:          model.AssessmentGenerating,
		ReferenceDocIDs: rawDocIDs,
		DurationMins:    input.DurationMins,
		CourseID:        input.CourseID,
		CreatedBy:       createdBy,
	}
	if err := s.repo.Create(assessment); err != nil {
		return nil, err
	}

	id := assessment.ID
	if err := s.queue.Enqueue("assessment_generation", func() error {
		return s.generate(id, input)
	}); err != nil {
		_ = s.repo.MarkFailed(id)
		return nil, err
	}

	return assessment, nil
}

func (s *AssessmentService) generate(assessmentID uint, input CreateAssessmentInput) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	references, err := s.loadReferences(ctx, input.DocumentIDs)
	if err != nil {
		logger.Log.Warn("reference load failed, generating without materials",
			zap.Uint("assessmentID", assessmentID), zap.Error(err))
	}

	parsed, err := s.generateQuestions(ctx, input, input.TotalQuestions, references)
	if err != nil {
		_ = s.repo.MarkFailed(assessmentID)
		return err
	}

	// 数量不足时补一轮, 仍不够就用已有的
	if len(parsed) < input.TotalQuestions {
		more, err := s.generateQuestions(ctx, input, input.TotalQuestions-len(parsed), references)
		if err == nil {
			parsed = append(parsed, more...)
		}
	}
	if len(parsed) == 0 {
		_ = s.repo.MarkFailed(assessmentID)
		return fmt.Errorf("model returned no usable questions for assessment %d", assessmentID)
	}
	if len(parsed) > input.TotalQuestions {
		parsed = parsed[:input.TotalQuestions]
	}

	questions := make([]model.Question, 0, len(parsed))
	var totalMarks float64
	for i, q := range parsed {
		marks := calculateMarks(q.QuestionType, input.Difficulty)
		totalMarks += marks
		questions = append(questions, model.Question{
			Type:          q.QuestionType,
			Text:          q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    input.Difficulty,
			Marks:         marks,
			Position:      i + 1,
		})
	}

	return s.repo.MarkCompleted(assessmentID, questions, totalMarks)
}

func (s *AssessmentService) generateQuestions(ctx context.Context, input CreateAssessmentInput, count int, references []string) ([]generatedQuestion, error) {
	prompt := buildAssessmentPrompt(input, count, references)
	response, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		return nil, err
	}
	return parseGeneratedQuestions(response, input.QuestionTypes), nil
}

func (s *AssessmentService) loadReferences(ctx context.Context, documentIDs []uint) ([]string, error) {
	var materials []string
	for _, id := range documentIDs {
		doc, err := s.docRepo.FindByID(id)
		if err != nil {
			return materials, err
		}
		reader, err := s.storage.Get(ctx, doc.ObjectKey)
		if err != nil {
			return materials, err
		}
		text, err := s.rag.ExtractText(doc.FileType, reader)
		reader.Close()
		if err != nil {
			return materials, err
		}
		materials = append(materials, text)
	}
	return materials, nil
}

type generatedQuestion struct {
	QuestionType  model.QuestionType `json:"question_type"`
	QuestionText  string             `json:"question_text"`
	Options       json.RawMessage    `json:"options"`
	CorrectAnswer json.RawMessage    `json:"correct_answer"`
	Explanation   string             `json:"explanation"`
}

func buildAssessmentPrompt(input CreateAssessmentInput, count int, references []string) string {
	typeInstructions := map[model.QuestionType]string{
		model.QuestionMCQ:         "Multiple Choice Questions with 4 options (only ONE correct answer)",
		model.QuestionMSQ:         "Multiple Select Questions with 4+ options (MULTIPLE correct answers)",
		model.QuestionNAT:         "Numerical Answer Type questions (answer is a number)",
		model.QuestionShortAnswer: "Short answer questions (1-2 sentences)",
		model.QuestionTrueFalse:   "True/False questions",
	}

	var types []string
	var typeNames []string
	for _, t := range input.QuestionTypes {
		types = append(types, "- "+typeInstructions[t])
		typeNames = append(typeNames, string(t))
	}

	context := strings.Join(references, "\n\n")
	if len(context) > 3000 {
		context = context[:3000]
	}
	if context == "" {
		context = "No specific reference material provided. Use general knowledge."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert educational content creator. Generate %d assessment questions.\n\n", count)
	fmt.Fprintf(&b, "**User Instructions:**\n%s\n\n", input.CustomPrompt)
	fmt.Fprintf(&b, "**Difficulty Level:** %s\n\n", input.Difficulty)
	fmt.Fprintf(&b, "**Question Types to Generate:**\n%s\n\n", strings.Join(types, "\n"))
	fmt.Fprintf(&b, "**Reference Material:**\n%s\n\n", context)
	b.WriteString(`**Output Format (STRICT JSON):**
Generate a JSON array of questions. Each question must follow this exact format:

{
  "question_type": "MCQ",
  "question_text": "What is...",
  "options": ["A. Option 1", "B. Option 2", "C. Option 3", "D. Option 4"],
  "correct_answer": ["A"],
  "explanation": "Explanation of why A is correct"
}

For MSQ, correct_answer holds multiple letters, e.g. ["A", "C"].
For NAT and SHORT_ANSWER, options is null and correct_answer is a string.
For TRUE_FALSE, options is ["True", "False"] and correct_answer is ["True"] or ["False"].

**Important Rules:**
`)
	fmt.Fprintf(&b, "1. Generate EXACTLY %d questions\n", count)
	fmt.Fprintf(&b, "2. Mix question types evenly from: %s\n", strings.Join(typeNames, ", "))
	b.WriteString(`3. Base questions on the reference material if provided
4. Provide clear, unambiguous questions
5. Include detailed explanations
6. Return ONLY valid JSON array, no other text

Generate the questions now as a JSON array:
`)
	return b.String()
}

// parseGeneratedQuestions 优先截取JSON数组解析, 失败时按行兜底
func parseGeneratedQuestions(response string, expectedTypes []model.QuestionType) []generatedQuestion {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]") + 1

	if start == -1 || end == 0 {
		if block := strings.Index(response, "```json"); block != -1 {
			start = strings.Index(response[block:], "[")
			if start != -1 {
				start += block
			}
			end = strings.LastIndex(response, "]") + 1
		}
	}

	if start != -1 && end > start {
		var questions []generatedQuestion
		if err := json.Unmarshal([]byte(response[start:end]), &questions); err == nil {
			validated := questions[:0]
			for _, q := range questions {
				if q.QuestionType.Valid() && q.QuestionText != "" && len(q.CorrectAnswer) > 0 {
					validated = append(validated, q)
				}
			}
			if len(validated) > 0 {
				return validated
			}
		}
	}

	return scrapeQuestionLines(response, expectedTypes)
}

// scrapeQuestionLines JSON解析失败时从文本行里凑题, 最多5道
func scrapeQuestionLines(response string, expectedTypes []model.QuestionType) []generatedQuestion {
	fallbackType := model.QuestionShortAnswer
	if len(expectedTypes) > 0 {
		fallbackType = expectedTypes[0]
	}

	var questions []generatedQuestion
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "Question") && !strings.HasPrefix(line, "Q") {
			continue
		}
		questions = append(questions, generatedQuestion{
			QuestionType:  fallbackType,
			QuestionText:  line,
			CorrectAnswer: json.RawMessage(`"Generated answer"`),
			Explanation:   "See reference material",
		})
		if len(questions) == 5 {
			break
		}
	}
	return questions
}

// calculateMarks 题型基础分乘以难度系数
func calculateMarks(t model.QuestionType, d model.DifficultyLevel) float64 {
	baseMarks := map[model.QuestionType]float64{
		model.QuestionMCQ:         1,
		model.QuestionMSQ:         2,
		model.QuestionNAT:         2,
		model.QuestionShortAnswer: 3,
		model.QuestionTrueFalse:   1,
	}
	multiplier := map[model.DifficultyLevel]float64{
		model.DifficultyEasy:   1,
		model.DifficultyMedium: 1,
		model.DifficultyHard:   2,
	}

	base, ok := baseMarks[t]
	if !ok {
		base = 1
	}
	mult, ok := multiplier[d]
	if !ok {
		mult = 1
	}
	return base * mult
}

func (s *AssessmentService) List(courseID uint) ([]model.Assessment, error) {
	return s.repo.FindAll(courseID)
}

// Get 学生只能看COMPLETED的卷子, 且不返回答案与解析
func (s *AssessmentService) Get(id uint, viewer *util.Claims) (*model.Assessment, error) {
	assessment, err := s.repo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, err
	}
	if viewer != nil && viewer.Role == model.Student {
		if assessment.Status != model.AssessmentCompleted {
			return nil, util.ErrAssessmentNotReady
		}
		for i := range assessment.Questions {
			assessment.Questions[i].Sanitize()
		}
	}
	return assessment, nil
}

// Delete 仅创建者可删
func (s *AssessmentService) Delete(id uint, viewer *util.Claims) error {
	assessment, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if assessment.CreatedBy != viewer.UserID && viewer.Role != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.repo.Delete(id)
}

// StartAttempt 已有未提交答卷时直接返回, 避免重复开卷
func (s *AssessmentService) StartAttempt(assessmentID, studentID uint) (*model.AssessmentAttempt, error) {
	assessment, err := s.repo.FindByID(assessmentID)
	if err != nil {
		return nil, err
	}
	if assessment.Status != model.AssessmentCompleted {
		return nil, util.ErrAssessmentNotReady
	}

	if open, err := s.repo.FindOpenAttempt(assessmentID, studentID); err == nil {
		return open, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	attempt := &model.AssessmentAttempt{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		StartedAt:    time.Now(),
		MaxScore:     assessment.TotalMarks,
	}
	if err := s.repo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

type SubmitResult struct {
	AttemptID     uint    `json:"attemptId"`
	Score         float64 `json:"score"`
	MaxScore      float64 `json:"maxScore"`
	Percentage    float64 `json:"percentage"`
	TimeTakenMins int     `json:"timeTakenMins"`
}

// SubmitAttempt 评分后条件更新落库, 重复提交返回冲突错误
func (s *AssessmentService) SubmitAttempt(attemptID, studentID uint, answers map[uint]model.AnswerValue) (*SubmitResult, error) {
	attempt, err := s.repo.FindAttempt(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Submitted() {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	assessment, err := s.repo.FindByIDWithQuestions(attempt.AssessmentID)
	if err != nil {
		return nil, err
	}

	score := GradeAssessment(assessment.Questions, answers)

	percentage := 0.0
	if attempt.MaxScore > 0 {
		percentage = score / attempt.MaxScore * 100
	}

	// 耗时按整分钟向下取整
	timeTaken := int(time.Since(attempt.StartedAt).Minutes())
	if timeTaken < 0 {
		timeTaken = 0
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SubmitAttempt(attemptID, rawAnswers, score, percentage, timeTaken); err != nil {
		return nil, err
	}

	return &SubmitResult{
		AttemptID:     attemptID,
		Score:         score,
		MaxScore:      attempt.MaxScore,
		Percentage:    percentage,
		TimeTakenMins: timeTaken,
	}, nil
}

func (s *AssessmentService) MyAttempts(studentID uint) ([]model.AssessmentAttempt, error) {
	return s.repo.FindAttemptsByStudent(studentID)
}

func (s *AssessmentService) AttemptsByAssessment(assessmentID uint) ([]model.AssessmentAttempt, error) {
	return s.repo.FindAttemptsByAssessment(assessmentID)
}
