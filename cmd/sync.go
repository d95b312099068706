package cmd

import (
	"context"
	"fmt"
	"time"

	"inventory-sync/core/config"
	"inventory-sync/core/logger"
	"inventory-sync/core/notify"
	"inventory-sync/core/reconcile"
	"inventory-sync/core/retry"
	"inventory-sync/feature/feed"
	"inventory-sync/feature/shopify"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync command
	dryRunSync     bool
	prefixOverride string
)

// syncCmd runs one full reconciliation: feed -> index -> plan -> apply -> report.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile vendor feed stock with platform inventory",
	Long: `Reconcile stock quantities from the vendor feed against the platform's
inventory levels and apply only the deltas.

The run is stateless and idempotent: it recomputes the full diff from
current remote state, and every write sets an absolute level, so re-running
at any time is safe.

Examples:
  # Full reconciliation run
  inventory-sync sync

  # Compute and report the plan without writing anything
  inventory-sync sync --dry-run

  # Restrict to a different vendor prefix for this run
  inventory-sync sync --prefix "HP-"`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Compute and report the plan without writing")
	syncCmd.Flags().StringVar(&prefixOverride, "prefix", "", "Override the configured SKU prefix filter")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if prefixOverride != "" {
		cfg.Feed.SKUPrefix = prefixOverride
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	runID := uuid.NewString()
	l = logger.WithRun(l, runID)

	started := time.Now()
	l.Info("starting inventory sync",
		zap.String("store", cfg.Shopify.Domain),
		zap.String("sku_prefix", cfg.Feed.SKUPrefix),
		zap.Bool("dry_run", dryRunSync))

	// The whole run shares one wall-clock budget. Tasks not started before
	// it expires are reported as failed; in-flight writes finish naturally.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sync.RunTimeout())
	defer cancel()

	policy := retry.Policy{
		MaxAttempts: cfg.Sync.MaxAttempts,
		Classify:    retry.ClassifyNetwork,
	}

	// Fatal errors go through the run logger before propagating, so they
	// land in the persisted run log alongside everything else.
	fail := func(err error) error {
		l.Error("sync aborted", zap.Error(err))
		return err
	}

	// Step 1: Fetch the vendor feed. Fatal on failure: nothing is written
	// without a trusted source.
	feedClient := feed.NewClient(cfg.Feed, policy, l)
	records, err := feedClient.Fetch(ctx)
	if err != nil {
		return fail(fmt.Errorf("feed fetch failed: %w", err))
	}

	// Step 2: Snapshot the platform catalog. Fatal on failure: updates are
	// never dispatched against a partial index.
	platform := shopify.NewClient(cfg.Shopify, policy, l)
	index, err := platform.BuildIndex(ctx)
	if err != nil {
		return fail(fmt.Errorf("catalog indexing failed: %w", err))
	}

	// Step 3: Compute the minimal diff.
	plan := reconcile.BuildPlan(records, index, l)
	l.Info("plan computed",
		zap.Int("pending_writes", len(plan.Tasks)),
		zap.Int("resolved", len(plan.Resolved)))

	// Step 4: Apply (unless dry-run).
	outcomes := plan.Resolved
	if dryRunSync {
		for _, task := range plan.Tasks {
			l.Info("would update",
				zap.String("sku", task.SKU),
				zap.Int64("location_id", task.LocationID),
				zap.Int("old_qty", task.Current),
				zap.Int("new_qty", task.Target))
		}
		l.Info("dry-run mode: no changes were made")
	} else {
		engine := reconcile.NewEngine(platform, policy, cfg.Sync, l)
		outcomes = append(outcomes, engine.Apply(ctx, plan.Tasks)...)
	}

	// Step 5: Report and notify.
	summary := reconcile.Summarize(runID, started, outcomes)
	printRunReport(l, summary)

	notifier := notify.NewMailer(cfg.Notify, l)
	subject := fmt.Sprintf("Inventory sync %s: %d updated, %d failed",
		summary.Status(), summary.Updated, summary.Failed)

	// Notification runs on its own deadline; the run budget may already be
	// spent, and a notification failure never changes the exit code.
	notifyCtx, notifyCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer notifyCancel()
	if err := notifier.Send(notifyCtx, subject, summary.Text()); err != nil {
		l.Warn("notification failed", zap.Error(err))
	}

	if summary.Status() == reconcile.StatusDegraded {
		l.Warn("sync completed with failures", zap.Int("failed", summary.Failed))
	}

	return nil
}

// printRunReport logs the aggregated counts plus a line for every outcome
// that needs operator attention.
func printRunReport(l *zap.Logger, summary *reconcile.RunSummary) {
	l.Info("sync complete",
		zap.String("status", string(summary.Status())),
		zap.Int("updated", summary.Updated),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("not_found", summary.NotFound),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration))

	for _, outcome := range summary.Details {
		switch outcome.Kind {
		case reconcile.OutcomeNotFound:
			l.Warn("sku not reconciled", zap.String("sku", outcome.SKU))
		case reconcile.OutcomeFailed:
			l.Warn("update not applied",
				zap.String("sku", outcome.SKU),
				zap.Int64("location_id", outcome.LocationID),
				zap.Int("attempts", outcome.Attempts),
				zap.String("reason", outcome.Reason))
		}
	}
}
