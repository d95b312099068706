package shopify

import (
	"context"
	"net/http"
)

// setLevelRequest is the absolute level write payload.
type setLevelRequest struct {
	LocationID      int64 `json:"location_id"`
	InventoryItemID int64 `json:"inventory_item_id"`
	Available       int   `json:"available"`
}

// SetLevel applies an absolute available count to one (inventory item,
// location) pair. The write is idempotent: replaying it yields the same end
// state. It makes exactly one attempt; retrying is the dispatcher's job.
func (c *Client) SetLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error {
	payload := setLevelRequest{
		LocationID:      locationID,
		InventoryItemID: inventoryItemID,
		Available:       available,
	}

	var out struct {
		InventoryLevel struct {
			Available *int `json:"available"`
		} `json:"inventory_level"`
	}

	_, err := c.do(ctx, http.MethodPost, c.endpoint("inventory_levels/set.json"), payload, &out)
	return err
}
