// internal/app/system/workers/completionsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	activitystore "github.com/helpinghands/volunteerhub/internal/app/store/activities"
	joinrequeststore "github.com/helpinghands/volunteerhub/internal/app/store/joinrequests"
	"go.uber.org/zap"
)

// CompletionSweep is a background worker that completes accepted join
// requests once their activity's date has passed. It backstops the manual
// completion path so engagements never stay accepted forever.
type CompletionSweep struct {
	activities *activitystore.Store
	joinReqs   *joinrequeststore.Store
	log        *zap.Logger
	interval   time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewCompletionSweep creates a new completion sweep worker.
func NewCompletionSweep(activities *activitystore.Store, joinReqs *joinrequeststore.Store, logger *zap.Logger, interval time.Duration) *CompletionSweep {
	return &CompletionSweep{
		activities: activities,
		joinReqs:   joinReqs,
		log:        logger,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *CompletionSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("completion sweep worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *CompletionSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("completion sweep worker stopped")
}

func (w *CompletionSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep performs one pass: every accepted request on a past-due activity
// moves to completed. Exported so tests and operators can trigger a pass
// directly.
func (w *CompletionSweep) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	activities, err := w.activities.ListPastDue(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("completion sweep: list past-due activities failed", zap.Error(err))
		return
	}

	var total int64
	for _, act := range activities {
		n, err := w.joinReqs.CompleteAllForActivity(ctx, act.ID)
		if err != nil {
			w.log.Error("completion sweep: complete requests failed",
				zap.Error(err),
				zap.String("activity_id", act.ID.Hex()))
			continue
		}
		total += n
	}

	if total > 0 {
		w.log.Info("completion sweep finished",
			zap.Int("activities", len(activities)),
			zap.Int64("completed", total))
	}
}
