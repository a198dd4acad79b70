package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/jobs"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
)

type DocumentService struct {
	repo    *repository.DocumentRepository
	rag     *RAGService
	storage StorageService
	queue   *jobs.Queue
	config  *config.Config
}

func NewDocumentService(
	repo *repository.DocumentRepository,
	rag *RAGService,
	storage StorageService,
	queue *jobs.Queue,
	cfg *config.Config,
) *DocumentService {
	return &DocumentService{
		repo:    repo,
		rag:     rag,
		storage: storage,
		queue:   queue,
		config:  cfg,
	}
}

// Upload 校验通过后先存对象再落库, 索引构建异步执行
func (s *DocumentService) Upload(ctx context.Context, title, filename, contentType string, size int64, r io.Reader, courseID, uploadedBy uint) (*model.Document, error) {
	if size > s.config.Upload.MaxFileSize {
		return nil, util.ErrFileTooLarge
	}
	if !s.typeAllowed(contentType) {
		return nil, util.ErrFileTypeNotAllowed
	}

	// 先整体读入, 上传与建索引共用同一份内容
	data, err := io.ReadAll(io.LimitReader(r, s.config.Upload.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.config.Upload.MaxFileSize {
		return nil, util.ErrFileTooLarge
	}

	objectKey := fmt.Sprintf("documents/%s/%s%s",
		time.Now().Format(util.DateFormat),
		uuid.NewString(),
		filepath.Ext(filename),
	)

	if err := s.storage.Put(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, err
	}

	doc := &model.Document{
		Title:      title,
		ObjectKey:  objectKey,
		FileType:   contentType,
		FileSize:   int64(len(data)),
		CourseID:   courseID,
		UploadedBy: uploadedBy,
	}
	if err := s.repo.Create(doc); err != nil {
		_ = s.storage.Delete(ctx, objectKey)
		return nil, err
	}

	docID := doc.ID
	if err := s.queue.Enqueue("document_indexing", func() error {
		return s.index(docID, data, contentType)
	}); err != nil {
		logger.Log.Error("index job enqueue failed", zap.Uint("documentID", docID), zap.Error(err))
	}

	return doc, nil
}

func (s *DocumentService) typeAllowed(contentType string) bool {
	for _, t := range s.config.Upload.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

func (s *DocumentService) index(documentID uint, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	doc, err := s.repo.FindByID(documentID)
	if err != nil {
		return err
	}

	text, err := s.rag.ExtractText(contentType, bytes.NewReader(data))
	if err != nil {
		return err
	}

	chunkIDs, err := s.rag.IndexDocument(ctx, doc.ID, doc.CourseID, doc.Title, text)
	if err != nil {
		return err
	}

	rawIDs, err := json.Marshal(chunkIDs)
	if err != nil {
		return err
	}
	doc.Processed = true
	doc.ChunkIDs = rawIDs
	return s.repo.Update(doc)
}

func (s *DocumentService) List(courseID uint) ([]model.Document, error) {
	return s.repo.FindByCourse(courseID)
}

func (s *DocumentService) Get(id uint) (*model.Document, error) {
	return s.repo.FindByID(id)
}

func (s *DocumentService) Download(ctx context.Context, id uint) (*model.Document, io.ReadCloser, error) {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.storage.Get(ctx, doc.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return doc, reader, nil
}

// Delete 依次清理向量索引/对象存储/数据库记录
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if len(doc.ChunkIDs) > 0 {
		var chunkIDs []string
		if err := json.Unmarshal(doc.ChunkIDs, &chunkIDs); err == nil {
			if err := s.rag.DeleteDocument(ctx, chunkIDs); err != nil {
				logger.Log.Warn("vector cleanup failed", zap.Uint("documentID", id), zap.Error(err))
			}
		}
	}
	if err := s.storage.Delete(ctx, doc.ObjectKey); err != nil {
		logger.Log.Warn("object cleanup failed", zap.Uint("documentID", id), zap.Error(err))
	}

	return s.repo.Delete(id)
}
