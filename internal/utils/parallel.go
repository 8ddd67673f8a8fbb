package utils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Task is a named unit of work for RunParallel.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunParallel executes all tasks concurrently and waits for every one of them.
// Failures are joined, each prefixed with its task name.
func RunParallel(ctx context.Context, tasks ...Task) error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task) {
			defer wg.Done()
			if err := t.Run(ctx); err != nil {
				errs[index] = fmt.Errorf("%s: %w", t.Name, err)
			}
		}(i, task)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// WorkerPool runs submitted tasks on a fixed number of goroutines.
type WorkerPool struct {
	maxWorkers int
	taskChan   chan func()
	wg         sync.WaitGroup
	l          *zap.Logger

	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// Panicking tasks are logged to l and do not stop their worker.
func NewWorkerPool(maxWorkers int, l *zap.Logger) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	pool := &WorkerPool{
		maxWorkers: maxWorkers,
		taskChan:   make(chan func(), maxWorkers*2), // Buffer for tasks
		l:          l,
	}

	for i := 0; i < maxWorkers; i++ {
		go pool.worker()
	}

	return pool
}

func (p *WorkerPool) worker() {
	for task := range p.taskChan {
		p.run(task)
	}
}

func (p *WorkerPool) run(task func()) {
	defer p.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			p.l.Error("worker task panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	task()
}

// AddTask queues a task, blocking while the buffer is full. It reports false
// when the pool is already closed and the task was dropped.
func (p *WorkerPool) AddTask(task func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.wg.Add(1)
	p.taskChan <- task
	return true
}

// Wait waits for all queued tasks to complete
func (p *WorkerPool) Wait() {
	p.wg.Wait()
}

// Close stops accepting tasks and waits for the queued ones to finish.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.taskChan)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
