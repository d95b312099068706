// Package reconcile implements the reconciliation pipeline's core: the data
// model joining vendor feed records to platform inventory, plan computation
// (the minimal diff between feed and catalog), the concurrent update
// dispatch engine, and run summarization.
//
// The pipeline is deliberately stateless between runs. Every run recomputes
// the full diff from the current remote state, and every write is an
// absolute "set level" call, so replaying a run cannot produce duplicate
// side effects.
//
// # Flow
//
// Feed records and a CatalogIndex go into BuildPlan, which emits Tasks for
// levels that differ and pre-resolved Outcomes for everything else. The
// Engine applies Tasks under bounded concurrency, a shared token-bucket
// rate limiter, and a retry policy. Summarize folds all Outcomes into a
// RunSummary for logging and notification.
package reconcile
