// Package events publishes task lifecycle events.
//
// The video service emits a TaskEvent when a task is queued and when it
// reaches a terminal state. Emission is decoupled from delivery: the
// InMemoryEventEmitter fans events out to registered handlers, one of which
// may publish them to Kafka.
//
// Event delivery is best effort. A failed handler never changes the outcome
// of the operation that emitted the event.
package events
