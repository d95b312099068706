// Package retry provides a generic retry policy for remote calls.
//
// A Policy combines an attempt ceiling, an exponential backoff schedule, and
// a Classifier that decides which errors are transient. Every remote call in
// the application (feed fetch, catalog pagination, inventory lookups and
// writes) goes through the same Policy so retry behavior is defined once.
package retry
