// Package id provides utilities for generating identifiers.
//
// Record identifiers are generated using UUIDv4 bytes encoded as base32
// (RFC 4648) with no padding. The resulting strings are 26 characters long,
// lowercase, and safe for use in URLs and file paths.
//
// Session identifiers name one live broadcast. They concatenate the current
// Unix-millisecond timestamp with a short random alphanumeric suffix and are
// unique within practical collision bounds, but NOT cryptographically
// secure: anyone who learns a session URL can join as audience.
package id
