// Package animation provides a timed frame-advance utility for stepping
// sprite animations.
//
// An Animation is a pure arithmetic state machine: callers feed it elapsed
// time via Advance and read the current frame back. It performs no timing of
// its own, spawns no goroutines, and has no interaction with path search;
// the server uses it to pace route playback frames for connected clients.
package animation
