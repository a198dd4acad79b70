package jobs

import (
	"fmt"
	"sync"
	"time"

	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"github.com/sohinisarkar2002/EduAssist/pkg/monitoring"
	"go.uber.org/zap"
)

// Job 后台生成任务。任务自身负责把失败写成终态（如 FAILED），队列不做重试。
type Job struct {
	Name string
	Run  func() error
}

// Queue 固定大小的后台任务队列。请求处理器入队后立即返回，客户端轮询状态。
type Queue struct {
	mu      sync.RWMutex
	jobs    chan Job
	wg      sync.WaitGroup
	stopped bool
}

func NewQueue(workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if size <= 0 {
		size = 16
	}

	q := &Queue{
		jobs: make(chan Job, size),
	}

	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	return q
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()
	for job := range q.jobs {
		q.execute(id, job)
	}
}

func (q *Queue) execute(worker int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("job panicked",
				zap.String("job", job.Name),
				zap.Int("worker", worker),
				zap.Any("panic", r),
			)
			monitoring.GenerationJobCounter.WithLabelValues(job.Name, "panic").Inc()
		}
	}()

	start := time.Now()
	if err := job.Run(); err != nil {
		logger.Log.Error("job failed",
			zap.String("job", job.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		monitoring.GenerationJobCounter.WithLabelValues(job.Name, "failed").Inc()
		return
	}

	logger.Log.Info("job completed",
		zap.String("job", job.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
	monitoring.GenerationJobCounter.WithLabelValues(job.Name, "completed").Inc()
}

// Enqueue 提交任务。队列已关闭或已满时返回错误，由调用方决定如何落状态。
// 读锁保证入队不会撞上 Stop 正在关闭的通道。
func (q *Queue) Enqueue(name string, run func() error) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.stopped {
		return fmt.Errorf("job queue stopped")
	}

	select {
	case q.jobs <- Job{Name: name, Run: run}:
		return nil
	default:
		return fmt.Errorf("job queue full")
	}
}

// Stop 关闭队列并等待在途任务跑完
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.stopped {
		q.stopped = true
		close(q.jobs)
	}
	q.mu.Unlock()
	q.wg.Wait()
}
