package jobs

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func TestQueueRunsJobs(t *testing.T) {
	q := NewQueue(2, 8)

	var count int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := q.Enqueue("test_job", func() error {
			defer wg.Done()
			atomic.AddInt32(&count, 1)
			return nil
		})
		require.NoError(t, err)
	}
	wg.Wait()
	q.Stop()

	assert.Equal(t, int32(5), atomic.LoadInt32(&count))
}

func TestQueueJobErrorDoesNotKillWorker(t *testing.T) {
	q := NewQueue(1, 4)

	done := make(chan struct{})
	require.NoError(t, q.Enqueue("failing", func() error {
		return errors.New("boom")
	}))
	require.NoError(t, q.Enqueue("after_failure", func() error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive job error")
	}
	q.Stop()
}

func TestQueueRecoversFromPanic(t *testing.T) {
	q := NewQueue(1, 4)

	done := make(chan struct{})
	require.NoError(t, q.Enqueue("panicking", func() error {
		panic("boom")
	}))
	require.NoError(t, q.Enqueue("after_panic", func() error {
		close(done)
		return nil
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive panic")
	}
	q.Stop()
}

func TestQueueFullReturnsError(t *testing.T) {
	q := NewQueue(1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, q.Enqueue("blocker", func() error {
		close(started)
		<-release
		return nil
	}))
	<-started

	// worker被占住, 填满缓冲后下一个入队必须失败
	require.NoError(t, q.Enqueue("buffered", func() error { return nil }))
	err := q.Enqueue("overflow", func() error { return nil })
	assert.Error(t, err)

	close(release)
	q.Stop()
}

func TestQueueEnqueueAfterStop(t *testing.T) {
	q := NewQueue(1, 4)
	q.Stop()

	err := q.Enqueue("late", func() error { return nil })
	assert.Error(t, err)
}

// 关停与入队并发时不允许往已关闭的通道发送
func TestQueueStopConcurrentWithEnqueue(t *testing.T) {
	for i := 0; i < 200; i++ {
		q := NewQueue(2, 8)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				// 关停后入队只会返回错误, 不会panic
				_ = q.Enqueue("racer", func() error { return nil })
			}
		}()

		q.Stop()
		wg.Wait()

		err := q.Enqueue("late", func() error { return nil })
		assert.Error(t, err)
	}
}
