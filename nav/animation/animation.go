package animation

import (
	"fmt"
	"time"
)

// Animation advances a frame counter over elapsed time. The zero value is not
// usable; construct instances with New.
type Animation struct {
	frameCount    int
	frameDuration time.Duration
	loop          bool

	elapsed time.Duration
	frame   int
	done    bool
}

// New creates an animation with frameCount frames of equal duration. A
// looping animation wraps back to frame zero; a non-looping one holds its
// last frame and reports done.
func New(frameCount int, frameDuration time.Duration, loop bool) (*Animation, error) {
	if frameCount < 1 {
		return nil, fmt.Errorf("animation: frame count must be at least 1, got %d", frameCount)
	}
	if frameDuration <= 0 {
		return nil, fmt.Errorf("animation: frame duration must be positive, got %v", frameDuration)
	}
	return &Animation{
		frameCount:    frameCount,
		frameDuration: frameDuration,
		loop:          loop,
	}, nil
}

// Advance accumulates elapsed time and reports whether the visible frame
// changed. Advancing a finished animation is a no-op.
func (a *Animation) Advance(dt time.Duration) bool {
	if a.done || dt <= 0 {
		return false
	}

	a.elapsed += dt
	next := int(a.elapsed / a.frameDuration)

	if a.loop {
		next %= a.frameCount
	} else if next >= a.frameCount-1 {
		next = a.frameCount - 1
		a.done = true
	}

	changed := next != a.frame
	a.frame = next
	return changed
}

// Frame returns the current frame index
func (a *Animation) Frame() int {
	return a.frame
}

// Done reports whether a non-looping animation has reached its last frame
func (a *Animation) Done() bool {
	return a.done
}

// Reset rewinds the animation to its first frame
func (a *Animation) Reset() {
	a.elapsed = 0
	a.frame = 0
	a.done = false
}
