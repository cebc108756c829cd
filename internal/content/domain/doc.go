// Package domain defines the authored content records and their validating
// constructors. Each record is owned by exactly one user and mutated only
// through store actions; constructors take injected clocks and id generators
// so tests stay deterministic.
package domain
