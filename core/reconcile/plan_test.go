package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// twoLocationIndex is the catalog used by most plan tests: HP-100 tracked at
// two locations, nothing else.
func twoLocationIndex(available int) *CatalogIndex {
	return &CatalogIndex{
		Variants: map[string]Variant{
			"HP-100": {SKU: "HP-100", VariantID: 11, InventoryItemID: 101},
		},
		Levels: map[int64][]Level{
			101: {
				{InventoryItemID: 101, LocationID: 1, Available: available},
				{InventoryItemID: 101, LocationID: 2, Available: available},
			},
		},
	}
}

func TestBuildPlan_DiffScenario(t *testing.T) {
	// Feed already filtered to the vendor prefix: X-1 never reaches the
	// planner, HP-200 is not in the catalog.
	records := []FeedRecord{
		{SKU: "HP-100", Quantity: 5},
		{SKU: "HP-200", Quantity: 0},
	}

	plan := BuildPlan(records, twoLocationIndex(3), zap.NewNop())

	require.Len(t, plan.Tasks, 2)
	for i, task := range plan.Tasks {
		assert.Equal(t, "HP-100", task.SKU)
		assert.Equal(t, int64(101), task.InventoryItemID)
		assert.Equal(t, int64(i+1), task.LocationID)
		assert.Equal(t, 5, task.Target)
		assert.Equal(t, 3, task.Current)
	}

	require.Len(t, plan.Resolved, 1)
	assert.Equal(t, OutcomeNotFound, plan.Resolved[0].Kind)
	assert.Equal(t, "HP-200", plan.Resolved[0].SKU)
}

func TestBuildPlan_Idempotence(t *testing.T) {
	// After a successful run the platform reads 5 everywhere; the same feed
	// must produce zero writes.
	records := []FeedRecord{{SKU: "HP-100", Quantity: 5}}

	plan := BuildPlan(records, twoLocationIndex(5), zap.NewNop())

	assert.Empty(t, plan.Tasks)
	require.Len(t, plan.Resolved, 2)
	for _, outcome := range plan.Resolved {
		assert.Equal(t, OutcomeUnchanged, outcome.Kind)
		assert.Equal(t, "HP-100", outcome.SKU)
	}
}

func TestBuildPlan_MixedLocations(t *testing.T) {
	// One location already matches, the other differs: exactly one task.
	index := &CatalogIndex{
		Variants: map[string]Variant{
			"HP-100": {SKU: "HP-100", VariantID: 11, InventoryItemID: 101},
		},
		Levels: map[int64][]Level{
			101: {
				{InventoryItemID: 101, LocationID: 1, Available: 5},
				{InventoryItemID: 101, LocationID: 2, Available: 3},
			},
		},
	}

	plan := BuildPlan([]FeedRecord{{SKU: "HP-100", Quantity: 5}}, index, zap.NewNop())

	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, int64(2), plan.Tasks[0].LocationID)
	require.Len(t, plan.Resolved, 1)
	assert.Equal(t, OutcomeUnchanged, plan.Resolved[0].Kind)
	assert.Equal(t, int64(1), plan.Resolved[0].LocationID)
}

func TestBuildPlan_VariantWithoutLocationsIsNotFound(t *testing.T) {
	index := &CatalogIndex{
		Variants: map[string]Variant{
			"HP-300": {SKU: "HP-300", VariantID: 31, InventoryItemID: 301},
		},
		Levels: map[int64][]Level{},
	}

	plan := BuildPlan([]FeedRecord{{SKU: "HP-300", Quantity: 7}}, index, zap.NewNop())

	assert.Empty(t, plan.Tasks)
	require.Len(t, plan.Resolved, 1)
	assert.Equal(t, OutcomeNotFound, plan.Resolved[0].Kind)
}

func TestBuildPlan_Completeness(t *testing.T) {
	// Outcomes must equal filtered records x matched locations (or one
	// not-found), with no (sku, location) pair planned twice.
	records := []FeedRecord{
		{SKU: "HP-100", Quantity: 5},
		{SKU: "HP-200", Quantity: 2},
		{SKU: "HP-404", Quantity: 1},
	}
	index := &CatalogIndex{
		Variants: map[string]Variant{
			"HP-100": {SKU: "HP-100", VariantID: 11, InventoryItemID: 101},
			"HP-200": {SKU: "HP-200", VariantID: 21, InventoryItemID: 201},
		},
		Levels: map[int64][]Level{
			101: {
				{InventoryItemID: 101, LocationID: 1, Available: 0},
				{InventoryItemID: 101, LocationID: 2, Available: 5},
				{InventoryItemID: 101, LocationID: 3, Available: 9},
			},
			201: {
				{InventoryItemID: 201, LocationID: 1, Available: 2},
			},
		},
	}

	plan := BuildPlan(records, index, zap.NewNop())

	// HP-100: 3 locations (1 unchanged), HP-200: 1 unchanged, HP-404: not found.
	assert.Len(t, plan.Tasks, 2)
	assert.Len(t, plan.Resolved, 3)
	assert.Equal(t, 5, len(plan.Tasks)+len(plan.Resolved))

	seen := make(map[[2]any]bool)
	for _, task := range plan.Tasks {
		key := [2]any{task.SKU, task.LocationID}
		assert.False(t, seen[key], "duplicate task for %v", key)
		seen[key] = true
	}
}

func TestBuildPlan_ReportOrderFollowsFeedOrder(t *testing.T) {
	records := []FeedRecord{
		{SKU: "HP-B", Quantity: 1},
		{SKU: "HP-A", Quantity: 2},
	}
	index := &CatalogIndex{
		Variants: map[string]Variant{
			"HP-A": {SKU: "HP-A", VariantID: 1, InventoryItemID: 10},
			"HP-B": {SKU: "HP-B", VariantID: 2, InventoryItemID: 20},
		},
		Levels: map[int64][]Level{
			10: {{InventoryItemID: 10, LocationID: 1, Available: 0}},
			20: {{InventoryItemID: 20, LocationID: 1, Available: 0}},
		},
	}

	plan := BuildPlan(records, index, zap.NewNop())

	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, "HP-B", plan.Tasks[0].SKU, "feed order wins over lexical order")
	assert.Equal(t, "HP-A", plan.Tasks[1].SKU)
}

func TestBuildPlan_LocationOrderIsStable(t *testing.T) {
	index := &CatalogIndex{
		Variants: map[string]Variant{
			"HP-100": {SKU: "HP-100", VariantID: 11, InventoryItemID: 101},
		},
		Levels: map[int64][]Level{
			// Deliberately out of order.
			101: {
				{InventoryItemID: 101, LocationID: 9, Available: 0},
				{InventoryItemID: 101, LocationID: 2, Available: 0},
			},
		},
	}

	plan := BuildPlan([]FeedRecord{{SKU: "HP-100", Quantity: 4}}, index, zap.NewNop())

	require.Len(t, plan.Tasks, 2)
	assert.Equal(t, int64(2), plan.Tasks[0].LocationID)
	assert.Equal(t, int64(9), plan.Tasks[1].LocationID)
}
