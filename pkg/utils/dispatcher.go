package utils

import (
	"context"
	"execdash/pkg/models"
	"github.com/hashicorp/go-hclog"
)

type Dispatcher struct {
	ctx        context.Context
	logger     hclog.Logger
	inputQueue chan models.Work
	workerPool chan chan models.Work
	maxWorkers int64
}

func NewDispatcher(ctx context.Context, logger hclog.Logger, maxWorkers int64, maxQueue int64) *Dispatcher {
	pool := make(chan chan models.Work, maxWorkers)
	return &Dispatcher{
		workerPool: pool,
		ctx:        ctx,
		logger:     logger.Named("dispatcher"),
		maxWorkers: maxWorkers,
		inputQueue: make(chan models.Work, maxQueue),
	}
}

func (dispatcher *Dispatcher) Run() {
	for i := 0; int64(i) < dispatcher.maxWorkers; i++ {
		worker := NewWorker(dispatcher.ctx, dispatcher.workerPool)
		worker.Start()
	}

	go dispatcher.dispatch()
}

func (dispatcher *Dispatcher) dispatch() {
	for {
		select {
		case input := <-dispatcher.inputQueue:
			go func(i models.Work) {
				select {
				case workerQueue := <-dispatcher.workerPool:
					workerQueue <- i
				case <-dispatcher.ctx.Done():
				}
			}(input)
		case <-dispatcher.ctx.Done():
			return
		}
	}
}

// NoBlockQueue queues the effector and returns, whatever lands on the error channel is logged.
// Once the dispatcher context is done the work is dropped instead of queued.
func (dispatcher *Dispatcher) NoBlockQueue(name string, effector func(successChannel chan any, errorChannel chan any)) {
	successChannel := make(chan any, 1)
	errorChannel := make(chan any, 1)

	work := models.Work{
		Name: name,
		Effector: func(successChannel chan any, errorChannel chan any) {
			effector(successChannel, errorChannel)
			select {
			case err := <-errorChannel:
				if err != nil {
					dispatcher.logger.Error("queued work failed", "work", name, "error", err)
				}
			default:
			}
		},
		SuccessChannel: successChannel,
		ErrorChannel:   errorChannel,
	}

	select {
	case dispatcher.inputQueue <- work:
	case <-dispatcher.ctx.Done():
		dispatcher.logger.Debug("dropped work after shutdown", "work", name)
	}
}
