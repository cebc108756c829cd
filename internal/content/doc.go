// Package content serves as an umbrella for the authored content domains:
// sermon notes, Bible highlights, Bible notes, and commentaries.
//
// The package is organized into two primary subpackages:
//   - domain: Defines the record types and their validating constructors.
//   - store: Implements the per-domain in-memory caches mirroring the
//     persisted collections with confirm-then-apply semantics.
package content
