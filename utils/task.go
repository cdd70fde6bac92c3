package utils

import (
	"github.com/schollz/progressbar/v3"
	"log"
	"sync"
)

// TaskOrchestrator bounds the number of tasks running at once and ticks a progress bar as each
// one finishes.
type TaskOrchestrator struct {
	bar   *progressbar.ProgressBar
	wg    sync.WaitGroup
	mutex sync.Mutex
	sem   chan struct{}
}

func NewTaskOrchestrator(bar *progressbar.ProgressBar, maxConcurrentOperations int64) *TaskOrchestrator {
	if maxConcurrentOperations < 1 {
		maxConcurrentOperations = 1
	}

	return &TaskOrchestrator{
		bar: bar,
		sem: make(chan struct{}, maxConcurrentOperations),
	}
}

// Go blocks until a slot is free, then runs task in its own goroutine.
func (task *TaskOrchestrator) Go(fn func()) {
	task.wg.Add(1)
	task.sem <- struct{}{}

	go func() {
		defer task.finishTask()
		fn()
	}()
}

func (task *TaskOrchestrator) Lock() {
	task.mutex.Lock()
}

func (task *TaskOrchestrator) Unlock() {
	task.mutex.Unlock()
}

func (task *TaskOrchestrator) finishTask() {
	if task.bar != nil {
		if err := task.bar.Add(1); err != nil {
			log.Printf("failed to update progress bar: %v", err)
		}
	}

	<-task.sem
	task.wg.Done()
}

func (task *TaskOrchestrator) WaitForTasks() {
	task.wg.Wait()
}
