// Package gbfs tracks shared-mobility station availability. A snapshot is an
// immutable capture of per-station vehicle and dock counts; the cache hands
// the current snapshot to any number of concurrent readers and a background
// refresher replaces it wholesale, so a reader never observes a half-updated
// mix of two captures.
package gbfs
