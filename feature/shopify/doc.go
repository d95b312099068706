// Package shopify implements the commerce platform side of the pipeline:
// the catalog indexer that snapshots sku -> variant identifiers and
// location-level stock across the paginated admin REST API, and the
// idempotent absolute inventory level write used by the dispatch engine.
//
// Indexing is all-or-nothing. The reconciler never sees a partial catalog,
// because diffing against one would silently hide discrepancies or push
// wrong counts to live locations.
package shopify
