// Package feed implements the vendor feed source: one authenticated HTTP
// download of the vendor's inventory XML, parsed into (sku, quantity)
// records and filtered to the vendor's SKU prefix.
//
// The feed is the system's source of truth for quantities. Parsing is
// deliberately tolerant of document shape (any root element, qty or stock
// quantity fields) but strict about identity: a product without a SKU fails
// the whole run.
package feed
