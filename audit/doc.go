// Package audit provides sinks for the action records emitted after every
// successful seating mutation.
//
// Nop discards records. JetStream publishes each record as JSON to a NATS
// JetStream stream, one subject per owner, partition and action:
//
//	{prefix}.{owner}.{partition}.{action}
//
// Records carry a Nats-Msg-Id derived from their content so that a retried
// publish of the same record is deduplicated by the stream.
package audit
