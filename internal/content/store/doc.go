// Package store implements the per-domain in-memory caches mirroring the
// persisted content collections.
//
// Each store is the single in-memory source of truth for one content domain
// in one application instance, backed 1:1 by a remote persisted collection.
// Writes are confirm-then-apply: the local cache is mutated only after the
// remote write succeeds, never speculatively, so a failed call degrades to a
// no-op. The stores hold no locks across remote calls; if two mutations
// race, the last write to complete wins. That is an accepted limitation, not
// a guaranteed-safe design.
//
// Anonymous principals see empty collections and no-op writes rather than
// errors.
package store
