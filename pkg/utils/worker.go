package utils

import (
	"context"
	"execdash/pkg/models"
)

type Worker struct {
	ctx         context.Context
	WorkerPool  chan chan models.Work
	WorkerQueue chan models.Work
}

func NewWorker(ctx context.Context, workerPool chan chan models.Work) Worker {
	return Worker{
		ctx:         ctx,
		WorkerPool:  workerPool,
		WorkerQueue: make(chan models.Work),
	}
}

func (worker Worker) Start() {
	go func() {
		for {
			select {
			case worker.WorkerPool <- worker.WorkerQueue:
			case <-worker.ctx.Done():
				return
			}
			select {
			case work := <-worker.WorkerQueue:
				work.Effector(work.SuccessChannel, work.ErrorChannel)
			case <-worker.ctx.Done():
				return
			}
		}
	}()
}
