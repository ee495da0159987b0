package service

import (
	"context"
	"sync"
	"time"
)

type clientRefreshJob struct {
	transactions ClientTransactionService
	session      ClientSessionService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a job that calls transactions.Refresh on a
// ticker while session is authenticated. The job is idle until Start is
// called.
func NewClientRefreshJob(transactions ClientTransactionService, session ClientSessionService) ClientRefreshJob {
	return &clientRefreshJob{transactions: transactions, session: session}
}

// Start implements ClientRefreshJob. Ticks that find the session anonymous
// are skipped.
func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration, onDone func(error)) {
	j.Stop()

	if interval <= 0 {
		return
	}

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, ok := j.session.CurrentIdentity(); !ok {
					continue
				}
				err := j.transactions.Refresh(jobCtx)
				if onDone != nil && jobCtx.Err() == nil {
					onDone(err)
				}
			}
		}
	}()
}

// Stop implements ClientRefreshJob. Safe to call when the job is not running.
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
