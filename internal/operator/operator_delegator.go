package operator

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/operator/actions"
)

const queueSize = 1000

// OperatorDelegator owns the write queue and the workers draining it.
// Category and transaction mutations go through Process so every one of
// them commits or rolls back as a unit.
type OperatorDelegator struct {
	storage    WriteOpener
	queue      chan ActionItem
	numWorkers int
	log        logrus.FieldLogger
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewOperatorDelegator sizes the pool; fewer than one worker means one.
// A nil log uses the logrus standard logger.
func NewOperatorDelegator(s WriteOpener, numWorkers int, log logrus.FieldLogger) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OperatorDelegator{
		storage:    s,
		queue:      make(chan ActionItem, queueSize),
		numWorkers: numWorkers,
		log:        log,
	}
}

func (d *OperatorDelegator) Start() {
	d.log.WithField("workers", d.numWorkers).Info("OperatorDelegator.Start")
	for i := 0; i < d.numWorkers; i++ {
		op := NewOperator(d.storage, d.queue, d.log.WithField("worker", i))
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

// Stop lets the workers finish what is already queued and waits for them.
// Process must not be called after Stop.
func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		close(d.queue)
		d.wg.Wait()
		metrics.SetQueueDepth(0)
		d.log.Info("OperatorDelegator.Stop")
	})
}

// Process queues action and waits for its outcome or for ctx to end. The
// action runs with ctx, so cancelling it also rolls back a started action.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		queuedAt: time.Now(),
		response: respCh,
	}

	select {
	case d.queue <- item:
		metrics.SetQueueDepth(len(d.queue))
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
