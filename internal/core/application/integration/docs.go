// Package integration defines the events exchanged with other services over
// the event bus: the envelope, the topic names and the mapping from order
// domain events to outbound topics.
package integration
