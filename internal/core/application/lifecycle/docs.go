// Package lifecycle applies a state machine trigger to a persisted order:
// lock, fire, save and stage the follow-on integration event, all inside the
// caller's transaction. Commands and the event reactor share it.
package lifecycle
