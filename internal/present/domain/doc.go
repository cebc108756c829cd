// Package domain defines the presentation broadcast entities: the full
// state snapshot pushed to audience viewers, the tagged update messages, and
// the session addressing scheme.
//
// Ownership is one-directional. The presenter holds the authoritative
// PresentationState; audience members apply received updates to a local copy
// and never send anything back. Because the transport offers no replay and
// no sequence numbers, the presenter re-broadcasts a full init snapshot on
// every state-affecting change, which is the sole convergence mechanism for
// late joiners and dropped messages.
package domain
