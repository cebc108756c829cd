// Package channel provides the named broadcast topic carrying presentation
// updates from one presenter to any number of audience subscribers.
//
// A Registry is an explicitly constructed container binding channels to a
// Broker, the underlying pub/sub transport. Two brokers ship with the
// service: an in-process hub for single-instance deployments and a Redis
// pub/sub broker for multi-instance fan-out.
//
// Delivery is fire-and-forget. Sends are not acknowledged, not retried, and
// not buffered for durability; subscribers joining late see nothing until
// the presenter's next full snapshot. Transport loss is surfaced only as
// silence. The presentation feature is a convenience overlay, not a
// durability-critical path.
package channel
