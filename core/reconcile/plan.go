package reconcile

import (
	"sort"

	"go.uber.org/zap"
)

// BuildPlan diffs feed records against the catalog snapshot and returns the
// minimal set of writes plus the outcomes that are already settled.
//
// For every record: a SKU without a variant, or with a variant but no known
// location, resolves to NotFound. A location whose available count already
// equals the feed quantity resolves to Unchanged. Everything else becomes a
// task. No write is planned twice for the same (sku, location) pair.
func BuildPlan(records []FeedRecord, index *CatalogIndex, log *zap.Logger) *Plan {
	plan := &Plan{}

	for seq, record := range records {
		variant, ok := index.Variants[record.SKU]
		if !ok {
			log.Warn("sku not in platform catalog", zap.String("sku", record.SKU))
			plan.Resolved = append(plan.Resolved, Outcome{
				Kind: OutcomeNotFound,
				SKU:  record.SKU,
				seq:  seq,
			})
			continue
		}

		levels := index.Levels[variant.InventoryItemID]
		if len(levels) == 0 {
			// A matched variant with zero locations is unreconcilable;
			// surface it rather than skipping silently.
			log.Warn("sku has no inventory locations",
				zap.String("sku", record.SKU),
				zap.Int64("inventory_item_id", variant.InventoryItemID))
			plan.Resolved = append(plan.Resolved, Outcome{
				Kind: OutcomeNotFound,
				SKU:  record.SKU,
				seq:  seq,
			})
			continue
		}

		// Stable location ordering for reproducible reports.
		ordered := make([]Level, len(levels))
		copy(ordered, levels)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].LocationID < ordered[j].LocationID
		})

		for _, level := range ordered {
			if level.Available == record.Quantity {
				plan.Resolved = append(plan.Resolved, Outcome{
					Kind:       OutcomeUnchanged,
					SKU:        record.SKU,
					LocationID: level.LocationID,
					OldQty:     level.Available,
					NewQty:     level.Available,
					seq:        seq,
				})
				continue
			}

			plan.Tasks = append(plan.Tasks, Task{
				SKU:             record.SKU,
				InventoryItemID: variant.InventoryItemID,
				LocationID:      level.LocationID,
				Target:          record.Quantity,
				Current:         level.Available,
				seq:             seq,
			})
		}
	}

	return plan
}

// sortOutcomes orders outcomes by first-seen feed position, then location.
// This is report ordering only; execution order carries no guarantee.
func sortOutcomes(outcomes []Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		if outcomes[i].seq != outcomes[j].seq {
			return outcomes[i].seq < outcomes[j].seq
		}
		return outcomes[i].LocationID < outcomes[j].LocationID
	})
}
