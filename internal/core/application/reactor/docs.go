// Package reactor applies inbound integration events from the stock and
// payment services to orders.
//
// Every event is handled at most once per (event id, topic): redelivered
// events replay the recorded outcome and change nothing. Business rejections
// (unknown order, transition not allowed) are recorded and acknowledged.
// Only storage failures are returned, so the bus redelivers the message.
package reactor
