package queue

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Job is a unit of background work, currently email dispatch.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Queue hands jobs off to a background worker. Execution is at-most-once:
// a failed job is logged and never retried.
type Queue interface {
	Enqueue(job Job) (string, error)
	Close()
}

type workerQueue struct {
	mu     sync.Mutex
	closed bool
	jobs   chan queuedJob
	wg     sync.WaitGroup
	once   sync.Once
}

type queuedJob struct {
	id  string
	job Job
}

// NewWorkerQueue starts an in-process worker draining a buffered channel.
func NewWorkerQueue(size int) *workerQueue {
	q := &workerQueue{
		jobs: make(chan queuedJob, size),
	}

	q.wg.Add(1)
	go q.run()

	return q
}

// Enqueue is fire-and-forget: the caller gets a job id immediately and
// must not assume the job completed.
func (q *workerQueue) Enqueue(job Job) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return "", fmt.Errorf("очередь остановлена, задача %s отклонена", job.Name())
	}

	id := uuid.New().String()

	select {
	case q.jobs <- queuedJob{id: id, job: job}:
		return id, nil
	default:
		return "", fmt.Errorf("очередь задач переполнена, задача %s отклонена", job.Name())
	}
}

func (q *workerQueue) run() {
	defer q.wg.Done()

	for item := range q.jobs {
		q.execute(item)
	}
}

func (q *workerQueue) execute(item queuedJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Задача %s (%s) завершилась паникой: %v", item.job.Name(), item.id, r)
		}
	}()

	if err := item.job.Run(context.Background()); err != nil {
		// the failure stays here as a logged result code
		log.Printf("Задача %s (%s) завершилась ошибкой: %v", item.job.Name(), item.id, err)
		return
	}

	log.Printf("Задача %s (%s) выполнена", item.job.Name(), item.id)
}

// Close stops accepting jobs and waits for the worker to drain.
func (q *workerQueue) Close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.jobs)
		q.mu.Unlock()
	})
	q.wg.Wait()
}
