// Package present serves as an umbrella for the live presentation feature,
// covering the broadcast session lifecycle and the state pushed from one
// presenter to any number of audience viewers.
//
// The package is organized into three primary subpackages:
//   - domain: Defines the presentation state snapshot, the tagged update
//     messages, and the session addressing scheme.
//   - channel: Provides the pub/sub broadcast topic with presence tracking.
//   - service: Implements the presenter-side service that applies mutations
//     and re-broadcasts full snapshots.
package present
