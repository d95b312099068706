package reconcile

// FeedRecord is one (sku, quantity) pair parsed from the vendor feed.
// Records are ephemeral; they live only for the duration of a run.
type FeedRecord struct {
	// SKU is the case-sensitive stock-keeping unit identifier, the join
	// key between the feed and the platform catalog.
	SKU string

	// Quantity is the vendor's current stock count. Never negative.
	Quantity int
}

// Variant identifies the platform-side sellable unit matching a feed SKU.
type Variant struct {
	// SKU is the join key back to the feed.
	SKU string

	// VariantID is the platform's variant identifier.
	VariantID int64

	// InventoryItemID is the platform's inventory item identifier, the key
	// into the location-level stock data.
	InventoryItemID int64
}

// Level is the current stock count of one inventory item at one location.
type Level struct {
	// InventoryItemID is the inventory item this level belongs to.
	InventoryItemID int64

	// LocationID is the stock-holding site.
	LocationID int64

	// Available is the platform's current available count at the location.
	Available int
}

// CatalogIndex is the complete snapshot of the remote catalog a run needs.
// A partial index is never used; the indexer either returns a full snapshot
// or an error.
type CatalogIndex struct {
	// Variants maps SKU to its platform identifiers.
	Variants map[string]Variant

	// Levels maps inventory item id to its known locations, in ascending
	// location id order.
	Levels map[int64][]Level
}

// Task is one pending absolute inventory write: align a single
// (inventory item, location) pair with the feed quantity.
type Task struct {
	// SKU is carried for logging and outcome reporting.
	SKU string

	// InventoryItemID and LocationID address the level to write.
	InventoryItemID int64
	LocationID      int64

	// Target is the feed quantity to set.
	Target int

	// Current is the platform quantity observed during indexing.
	Current int

	// seq preserves first-seen feed order for report ordering.
	seq int
}

// OutcomeKind classifies the result of reconciling one (sku, location) pair.
type OutcomeKind string

const (
	// OutcomeUpdated means the platform level was set to the feed quantity.
	OutcomeUpdated OutcomeKind = "updated"
	// OutcomeUnchanged means the platform already matched the feed.
	OutcomeUnchanged OutcomeKind = "unchanged"
	// OutcomeNotFound means the SKU has no variant or no known location on
	// the platform. Reported, never retried.
	OutcomeNotFound OutcomeKind = "not_found"
	// OutcomeFailed means the write could not be applied.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome records what happened to one task, or to a SKU that never
// produced a task. Each outcome is consumed exactly once by the reporter.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	SKU string `json:"sku"`

	// LocationID is zero when no location was resolved (not-found SKUs).
	LocationID int64 `json:"location_id,omitempty"`

	// OldQty and NewQty are populated for updated outcomes.
	OldQty int `json:"old_qty,omitempty"`
	NewQty int `json:"new_qty,omitempty"`

	// Reason explains a failure ("run-timeout", HTTP status, ...).
	Reason string `json:"reason,omitempty"`

	// Attempts is the number of write attempts made, including the last.
	Attempts int `json:"attempts,omitempty"`

	seq int
}

// Plan is the computed diff between the feed and the catalog snapshot.
type Plan struct {
	// Tasks are the writes required to align the platform with the feed.
	Tasks []Task

	// Resolved are outcomes settled during planning without any write:
	// unchanged levels and not-found SKUs.
	Resolved []Outcome
}
