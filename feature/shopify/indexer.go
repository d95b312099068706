package shopify

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"inventory-sync/core/reconcile"

	"go.uber.org/zap"
)

// productsPage mirrors the products listing response, trimmed to the fields
// the index needs.
type productsPage struct {
	Products []struct {
		ID       int64 `json:"id"`
		Variants []struct {
			ID              int64  `json:"id"`
			SKU             string `json:"sku"`
			InventoryItemID int64  `json:"inventory_item_id"`
		} `json:"variants"`
	} `json:"products"`
}

// levelsPage mirrors the inventory levels listing response.
type levelsPage struct {
	InventoryLevels []struct {
		InventoryItemID int64 `json:"inventory_item_id"`
		LocationID      int64 `json:"location_id"`
		Available       *int  `json:"available"`
	} `json:"inventory_levels"`
}

// BuildIndex walks the entire paginated product catalog, then the inventory
// levels of every discovered item in bounded batches, and returns a complete
// snapshot. Any page or batch failure, after the retry budget, aborts with
// an IndexError: a partial index would hide real discrepancies when
// under-updating and risk corrupting live counts when over-updating.
func (c *Client) BuildIndex(ctx context.Context) (*reconcile.CatalogIndex, error) {
	index := &reconcile.CatalogIndex{
		Variants: make(map[string]reconcile.Variant),
		Levels:   make(map[int64][]reconcile.Level),
	}

	if err := c.indexVariants(ctx, index); err != nil {
		return nil, &IndexError{Err: err}
	}
	if err := c.indexLevels(ctx, index); err != nil {
		return nil, &IndexError{Err: err}
	}

	c.log.Info("catalog indexed",
		zap.Int("variants", len(index.Variants)),
		zap.Int("inventory_items", len(index.Levels)))

	return index, nil
}

// indexVariants accumulates sku -> variant across every catalog page. The
// catalog may be any size; fetching stops only when the platform signals no
// further page (no next cursor, or an empty page).
func (c *Client) indexVariants(ctx context.Context, index *reconcile.CatalogIndex) error {
	pageSize := c.cfg.PageSize
	if pageSize <= 0 || pageSize > 250 {
		pageSize = 250
	}

	next := c.endpoint(fmt.Sprintf("products.json?limit=%d&fields=id,variants", pageSize))
	pages := 0

	for next != "" {
		var page productsPage
		var link string

		pageURL := next
		_, err := c.policy.Do(ctx, func(ctx context.Context) error {
			page = productsPage{}
			l, err := c.do(ctx, http.MethodGet, pageURL, nil, &page)
			link = l
			return err
		})
		if err != nil {
			return fmt.Errorf("products page %d: %w", pages+1, err)
		}
		pages++

		for _, product := range page.Products {
			for _, variant := range product.Variants {
				sku := strings.TrimSpace(variant.SKU)
				if sku == "" {
					continue
				}
				if _, dup := index.Variants[sku]; dup {
					c.log.Warn("duplicate sku in catalog, keeping last",
						zap.String("sku", sku),
						zap.Int64("variant_id", variant.ID))
				}
				index.Variants[sku] = reconcile.Variant{
					SKU:             sku,
					VariantID:       variant.ID,
					InventoryItemID: variant.InventoryItemID,
				}
			}
		}

		if len(page.Products) == 0 {
			break
		}
		next = nextPageURL(link)
	}

	c.log.Debug("catalog pages fetched", zap.Int("pages", pages))
	return nil
}

// indexLevels looks up current inventory levels for every distinct item,
// batching ids to stay within the platform's per-request limit. Lookups are
// sequential; the request count is already bounded by the batch size.
func (c *Client) indexLevels(ctx context.Context, index *reconcile.CatalogIndex) error {
	batchSize := c.cfg.LevelBatchSize
	if batchSize <= 0 || batchSize > 50 {
		batchSize = 50
	}

	ids := make([]int64, 0, len(index.Variants))
	seen := make(map[int64]struct{}, len(index.Variants))
	for _, variant := range index.Variants {
		if _, ok := seen[variant.InventoryItemID]; ok {
			continue
		}
		seen[variant.InventoryItemID] = struct{}{}
		ids = append(ids, variant.InventoryItemID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		if err := c.fetchLevelBatch(ctx, index, ids[start:end]); err != nil {
			return err
		}
	}

	// Ascending location order per item, so plans and reports are stable.
	for itemID := range index.Levels {
		levels := index.Levels[itemID]
		sort.Slice(levels, func(i, j int) bool {
			return levels[i].LocationID < levels[j].LocationID
		})
	}

	return nil
}

// fetchLevelBatch loads all levels for one batch of inventory item ids,
// following pagination in case the batch spans many locations.
func (c *Client) fetchLevelBatch(ctx context.Context, index *reconcile.CatalogIndex, ids []int64) error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}

	next := c.endpoint(fmt.Sprintf("inventory_levels.json?inventory_item_ids=%s&limit=250", strings.Join(parts, ",")))

	for next != "" {
		var page levelsPage
		var link string

		pageURL := next
		_, err := c.policy.Do(ctx, func(ctx context.Context) error {
			page = levelsPage{}
			l, err := c.do(ctx, http.MethodGet, pageURL, nil, &page)
			link = l
			return err
		})
		if err != nil {
			return fmt.Errorf("inventory levels for %d items: %w", len(ids), err)
		}

		for _, level := range page.InventoryLevels {
			if level.Available == nil {
				// Untracked at this location; nothing to reconcile.
				c.log.Warn("inventory level untracked, skipping",
					zap.Int64("inventory_item_id", level.InventoryItemID),
					zap.Int64("location_id", level.LocationID))
				continue
			}
			index.Levels[level.InventoryItemID] = append(index.Levels[level.InventoryItemID], reconcile.Level{
				InventoryItemID: level.InventoryItemID,
				LocationID:      level.LocationID,
				Available:       *level.Available,
			})
		}

		if len(page.InventoryLevels) == 0 {
			break
		}
		next = nextPageURL(link)
	}

	return nil
}
