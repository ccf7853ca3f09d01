package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/metrics"
	"github.com/carson-networks/budget-api/internal/operator/actions"
	"github.com/carson-networks/budget-api/internal/storage"
)

// WriteOpener starts a database transaction for one action.
type WriteOpener interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is one write worker. It runs each queued action inside its own
// transaction and reports the result on the item's response channel.
type Operator struct {
	storage WriteOpener
	queue   <-chan ActionItem
	log     logrus.FieldLogger
}

func NewOperator(s WriteOpener, queue <-chan ActionItem, log logrus.FieldLogger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		log:     log,
	}
}

// Run processes items until the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		metrics.SetQueueDepth(len(o.queue))
		item.response <- ActionItemResponse{err: o.execute(item)}
	}
}

func (o *Operator) execute(item ActionItem) (err error) {
	name := item.action.Name()
	logData := logging.GetLogData(item.ctx)
	logData.AddData("action", name)
	logData.AddData("queueWaitMs", time.Since(item.queuedAt).Milliseconds())

	start := time.Now()
	defer func() {
		metrics.ObserveAction(name, err, time.Since(start))
	}()

	// The caller gave up while the item sat in the queue.
	if err = item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return err
	}

	stopTimer := logData.AddTiming("actionMs")
	err = item.action.Perform(item.ctx, writer)
	stopTimer()
	if err != nil {
		if rbErr := writer.Rollback(context.WithoutCancel(item.ctx)); rbErr != nil {
			o.log.WithError(rbErr).WithField("action", name).Warn("Operator.Rollback")
		}
		return err
	}

	return writer.Commit(item.ctx)
}

// ActionItem is one queued action and the channel its caller waits on.
type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	queuedAt time.Time
	response chan<- ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
