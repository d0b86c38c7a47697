// Package messaging publishes and consumes messages on NATS subjects.
//
// NATS is fire-and-forget: a Nack is a no-op and failed messages are lost.
// JetStream persists messages in a stream, and a Nack schedules a bounded
// redelivery.
//
// Business code depends on the Publisher and Consumer interfaces only, so
// tests can substitute fakes and the broker stays an outbound detail.
package messaging
