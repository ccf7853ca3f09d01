package operator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/budget-api/internal/logging"
	"github.com/carson-networks/budget-api/internal/storage"
)

type fakeTx struct {
	commits   atomic.Int32
	rollbacks atomic.Int32
	commitErr error
}

func (f *fakeTx) Commit(context.Context) error {
	f.commits.Add(1)
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rollbacks.Add(1)
	return nil
}

type fakeOpener struct {
	tx      *fakeTx
	openErr error
}

func (f *fakeOpener) Write(context.Context) (*storage.Writer, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return storage.NewWriterWith(f.tx, nil, nil), nil
}

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (funcAction) Name() string { return "test-action" }

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func startDelegator(t *testing.T, opener WriteOpener) *OperatorDelegator {
	t.Helper()
	d := NewOperatorDelegator(opener, 2, nil)
	d.Start()
	t.Cleanup(d.Stop)
	return d
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	d := startDelegator(t, &fakeOpener{tx: tx})

	ran := false
	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		ran = true
		return nil
	}))

	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, int32(1), tx.commits.Load())
	assert.Equal(t, int32(0), tx.rollbacks.Load())
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	tx := &fakeTx{}
	d := startDelegator(t, &fakeOpener{tx: tx})

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("boom")
	}))

	assert.EqualError(t, err, "boom")
	assert.Equal(t, int32(0), tx.commits.Load())
	assert.Equal(t, int32(1), tx.rollbacks.Load())
}

func TestProcess_CommitError(t *testing.T) {
	tx := &fakeTx{commitErr: errors.New("serialization failure")}
	d := startDelegator(t, &fakeOpener{tx: tx})

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.EqualError(t, err, "serialization failure")
}

func TestProcess_OpenError(t *testing.T) {
	d := startDelegator(t, &fakeOpener{openErr: errors.New("pool exhausted")})

	err := d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		t.Fatal("action must not run")
		return nil
	}))

	assert.EqualError(t, err, "pool exhausted")
}

func TestProcess_CancelledContext(t *testing.T) {
	d := startDelegator(t, &fakeOpener{tx: &fakeTx{}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_RecordsActionOnLogData(t *testing.T) {
	d := startDelegator(t, &fakeOpener{tx: &fakeTx{}})
	logData := logging.NewLogData(logrus.New())
	ctx := logging.WithLogData(context.Background(), logData)

	err := d.Process(ctx, funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))
	require.NoError(t, err)

	fields := logData.Log().Data
	assert.Equal(t, "test-action", fields["action"])
	assert.Contains(t, fields, "queueWaitMs")
	assert.Contains(t, fields, "actionMs")
}

func TestStop_DrainsQueuedActions(t *testing.T) {
	tx := &fakeTx{}
	d := NewOperatorDelegator(&fakeOpener{tx: tx}, 1, nil)
	d.Start()

	var done atomic.Int32
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		go func() {
			errs <- d.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
				done.Add(1)
				return nil
			}))
		}()
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, <-errs)
	}
	d.Stop()
	d.Stop()

	assert.Equal(t, int32(5), done.Load())
	assert.Equal(t, int32(5), tx.commits.Load())
}
