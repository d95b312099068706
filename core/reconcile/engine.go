package reconcile

import (
	"context"

	"inventory-sync/core/retry"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Setter applies one absolute inventory level to the platform. Setting the
// same level twice is safe and yields the same end state; this idempotency
// is what makes re-running the whole pipeline harmless.
type Setter interface {
	SetLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error
}

// Engine executes reconciliation tasks on a bounded worker pool. Workers
// share nothing mutable except the token-bucket rate limiter and the
// outcome channel.
type Engine struct {
	setter  Setter
	policy  retry.Policy
	limiter *rate.Limiter
	workers int
	log     *zap.Logger
}

// NewEngine creates an engine sized per the sync configuration.
func NewEngine(setter Setter, policy retry.Policy, cfg Config, log *zap.Logger) *Engine {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Engine{
		setter:  setter,
		policy:  policy,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		workers: workers,
		log:     log,
	}
}

// Apply executes every task and returns one outcome per task, in report
// order. One task's failure never aborts or blocks its siblings. When ctx
// expires, tasks not yet started are failed with reason "run-timeout" while
// in-flight writes finish or fail naturally.
func (e *Engine) Apply(ctx context.Context, tasks []Task) []Outcome {
	taskCh := make(chan Task)
	results := make(chan Outcome, len(tasks))

	var g errgroup.Group
	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for task := range taskCh {
				results <- e.run(ctx, task)
			}
			return nil
		})
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)

	// Workers never return errors; outcomes carry the failures.
	_ = g.Wait()
	close(results)

	outcomes := make([]Outcome, 0, len(tasks))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	sortOutcomes(outcomes)

	return outcomes
}

// run executes a single task under the shared rate limit and retry policy.
func (e *Engine) run(ctx context.Context, task Task) Outcome {
	// The run deadline fences task starts only; it must not abort a write
	// mid-flight.
	if ctx.Err() != nil {
		return e.failed(task, "run-timeout", 0)
	}

	// Writes run detached from the run deadline so an in-flight request
	// completes naturally even if the run budget expires underneath it.
	writeCtx := context.WithoutCancel(ctx)

	attempts, err := e.policy.Do(writeCtx, func(ctx context.Context) error {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
		return e.setter.SetLevel(ctx, task.InventoryItemID, task.LocationID, task.Target)
	})
	if err != nil {
		e.log.Warn("inventory update failed",
			zap.String("sku", task.SKU),
			zap.Int64("location_id", task.LocationID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return e.failed(task, err.Error(), attempts)
	}

	e.log.Info("inventory updated",
		zap.String("sku", task.SKU),
		zap.Int64("location_id", task.LocationID),
		zap.Int("old_qty", task.Current),
		zap.Int("new_qty", task.Target),
		zap.Int("attempts", attempts))

	return Outcome{
		Kind:       OutcomeUpdated,
		SKU:        task.SKU,
		LocationID: task.LocationID,
		OldQty:     task.Current,
		NewQty:     task.Target,
		Attempts:   attempts,
		seq:        task.seq,
	}
}

func (e *Engine) failed(task Task, reason string, attempts int) Outcome {
	return Outcome{
		Kind:       OutcomeFailed,
		SKU:        task.SKU,
		LocationID: task.LocationID,
		OldQty:     task.Current,
		Reason:     reason,
		Attempts:   attempts,
		seq:        task.seq,
	}
}
