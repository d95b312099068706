package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// Status is the terminal classification of a run that reached dispatch.
type Status string

const (
	// StatusSuccess means every outcome is updated, unchanged, or not found.
	StatusSuccess Status = "success"
	// StatusDegraded means at least one task failed but the run completed.
	StatusDegraded Status = "degraded"
)

// RunSummary aggregates per-SKU outcomes into the run's report.
type RunSummary struct {
	// RunID correlates the summary with the run's log lines.
	RunID string `json:"run_id"`

	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	NotFound  int `json:"not_found"`
	Failed    int `json:"failed"`

	// Details holds every outcome in report order.
	Details []Outcome `json:"details"`

	// Started and Duration bound the run on the wall clock.
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
}

// Summarize aggregates outcomes into a RunSummary. Pure aggregation: it
// counts, orders, and never mutates the outcomes' content.
func Summarize(runID string, started time.Time, outcomes []Outcome) *RunSummary {
	details := make([]Outcome, len(outcomes))
	copy(details, outcomes)
	sortOutcomes(details)

	summary := &RunSummary{
		RunID:    runID,
		Details:  details,
		Started:  started,
		Duration: time.Since(started),
	}

	for _, outcome := range details {
		switch outcome.Kind {
		case OutcomeUpdated:
			summary.Updated++
		case OutcomeUnchanged:
			summary.Unchanged++
		case OutcomeNotFound:
			summary.NotFound++
		case OutcomeFailed:
			summary.Failed++
		}
	}

	return summary
}

// Status classifies the finished run. Fatal conditions (feed or index
// failure) never reach Summarize; they abort the run earlier.
func (s *RunSummary) Status() Status {
	if s.Failed > 0 {
		return StatusDegraded
	}
	return StatusSuccess
}

// Text renders the human-readable report: one summary line plus a detail
// line for every outcome that is not unchanged.
func (s *RunSummary) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Inventory sync run %s (%s)\n", s.RunID, s.Status())
	fmt.Fprintf(&b, "updated=%d unchanged=%d not_found=%d failed=%d duration=%s\n",
		s.Updated, s.Unchanged, s.NotFound, s.Failed, s.Duration.Round(time.Millisecond))

	for _, outcome := range s.Details {
		switch outcome.Kind {
		case OutcomeUpdated:
			fmt.Fprintf(&b, "updated   %s location=%d %d -> %d\n",
				outcome.SKU, outcome.LocationID, outcome.OldQty, outcome.NewQty)
		case OutcomeNotFound:
			fmt.Fprintf(&b, "not_found %s\n", outcome.SKU)
		case OutcomeFailed:
			fmt.Fprintf(&b, "failed    %s location=%d attempts=%d reason=%s\n",
				outcome.SKU, outcome.LocationID, outcome.Attempts, outcome.Reason)
		}
	}

	return b.String()
}
