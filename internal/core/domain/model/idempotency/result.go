package idempotency

// Result is the terminal outcome of a command. A failed Result is still a
// completed request: replays return the same failure.
type Result struct {
	succeeded bool
	payload   []byte
	reason    string
}

// Success wraps the serialized value returned to the caller.
func Success(payload []byte) Result {
	return Result{succeeded: true, payload: append([]byte(nil), payload...)}
}

// Failure records why the command could not be carried out.
func Failure(reason string) Result {
	return Result{reason: reason}
}

// FailureWithPayload records a failure that still carries a serialized value.
func FailureWithPayload(reason string, payload []byte) Result {
	return Result{reason: reason, payload: append([]byte(nil), payload...)}
}

func (r Result) Succeeded() bool { return r.succeeded }
func (r Result) Reason() string { return r.reason }

// Payload returns a copy of the serialized value.
func (r Result) Payload() []byte {
	return append([]byte(nil), r.payload...)
}
