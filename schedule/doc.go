// Package schedule holds the static transit schedule index: service
// calendars with exception dates, per-stop ordered departures, per-trip
// stop sequences, and the date-matching logic that binds a query instant
// to the service date whose schedule governs it.
//
// The index is built once at startup and never mutated afterwards, so it
// may be shared by reference across concurrent searches without locking.
package schedule
