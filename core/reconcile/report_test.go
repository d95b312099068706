package reconcile

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_Counts(t *testing.T) {
	outcomes := []Outcome{
		{Kind: OutcomeUpdated, SKU: "HP-100", LocationID: 1, OldQty: 3, NewQty: 5, seq: 0},
		{Kind: OutcomeUpdated, SKU: "HP-100", LocationID: 2, OldQty: 3, NewQty: 5, seq: 0},
		{Kind: OutcomeNotFound, SKU: "HP-200", seq: 1},
		{Kind: OutcomeUnchanged, SKU: "HP-300", LocationID: 1, seq: 2},
		{Kind: OutcomeFailed, SKU: "HP-400", LocationID: 1, Reason: "status 500", Attempts: 5, seq: 3},
	}

	summary := Summarize("run-1", time.Now().Add(-time.Second), outcomes)

	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, 1, summary.Unchanged)
	assert.Equal(t, 1, summary.NotFound)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, summary.Details, 5)
	assert.Greater(t, summary.Duration, time.Duration(0))
}

func TestSummarize_OrdersDetails(t *testing.T) {
	outcomes := []Outcome{
		{Kind: OutcomeUpdated, SKU: "HP-100", LocationID: 2, seq: 0},
		{Kind: OutcomeNotFound, SKU: "HP-200", seq: 1},
		{Kind: OutcomeUpdated, SKU: "HP-100", LocationID: 1, seq: 0},
	}

	summary := Summarize("run-1", time.Now(), outcomes)

	require.Len(t, summary.Details, 3)
	assert.Equal(t, int64(1), summary.Details[0].LocationID)
	assert.Equal(t, int64(2), summary.Details[1].LocationID)
	assert.Equal(t, "HP-200", summary.Details[2].SKU)
}

func TestRunSummaryStatus(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []Outcome
		want     Status
	}{
		{
			name:     "all updated",
			outcomes: []Outcome{{Kind: OutcomeUpdated}},
			want:     StatusSuccess,
		},
		{
			name:     "not found only is still success",
			outcomes: []Outcome{{Kind: OutcomeNotFound}},
			want:     StatusSuccess,
		},
		{
			name:     "any failure degrades",
			outcomes: []Outcome{{Kind: OutcomeUpdated}, {Kind: OutcomeFailed}},
			want:     StatusDegraded,
		},
		{
			name:     "empty run succeeds",
			outcomes: nil,
			want:     StatusSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Summarize("run", time.Now(), tt.outcomes)
			assert.Equal(t, tt.want, summary.Status())
		})
	}
}

func TestRunSummaryText(t *testing.T) {
	outcomes := []Outcome{
		{Kind: OutcomeUpdated, SKU: "HP-100", LocationID: 1, OldQty: 3, NewQty: 5},
		{Kind: OutcomeUnchanged, SKU: "HP-300", LocationID: 1},
		{Kind: OutcomeNotFound, SKU: "HP-200"},
		{Kind: OutcomeFailed, SKU: "HP-400", LocationID: 2, Reason: "status 500", Attempts: 5},
	}

	text := Summarize("run-9", time.Now(), outcomes).Text()

	assert.Contains(t, text, "run-9")
	assert.Contains(t, text, "updated=1 unchanged=1 not_found=1 failed=1")
	assert.Contains(t, text, "HP-100 location=1 3 -> 5")
	assert.Contains(t, text, "not_found HP-200")
	assert.Contains(t, text, "reason=status 500")
	// Unchanged outcomes stay out of the detail lines.
	assert.False(t, strings.Contains(text, "HP-300"))
}
