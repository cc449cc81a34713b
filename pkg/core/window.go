/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: window.go
Description: Sliding window matcher. Keeps the trailing bytes of the generated stream
in a ring no larger than the target and tests it for exact equality after each push.
*/

package core

import (
	"bytes"
	"fmt"
)

// SlidingWindow holds the most recent generated bytes and compares them to the target
// The ring never holds more than len(target) bytes
type SlidingWindow struct {
	target []byte
	ring   []byte
	start  int    // Index of the oldest byte once the ring is full
	size   int    // Number of valid bytes in the ring
	offset uint64 // Bytes evicted from the front
	pushed uint64 // Bytes pushed in total
}

// NewSlidingWindow creates a matcher for target
// Returns ErrConfiguration for an empty target
func NewSlidingWindow(target []byte) (*SlidingWindow, error) {
	if len(target) == 0 {
		return nil, fmt.Errorf("%w: cannot match an empty target", ErrConfiguration)
	}
	return &SlidingWindow{
		target: target,
		ring:   make([]byte, len(target)),
	}, nil
}

// PushAndCheck appends b, evicts the oldest byte when the window exceeds the target
// length and reports whether the window now equals the target exactly
func (w *SlidingWindow) PushAndCheck(b byte) bool {
	w.pushed++
	capacity := len(w.ring)

	if w.size < capacity {
		w.ring[w.size] = b
		w.size++
		if w.size < capacity {
			return false
		}
	} else {
		// Overwriting the oldest slot is append followed by eviction
		w.ring[w.start] = b
		w.start++
		if w.start == capacity {
			w.start = 0
		}
		w.offset++
	}

	// The newest byte must equal the last target byte before a full comparison
	if b != w.target[capacity-1] {
		return false
	}
	head := w.ring[w.start:]
	return bytes.Equal(head, w.target[:len(head)]) && bytes.Equal(w.ring[:w.start], w.target[len(head):])
}

// Offset returns the number of bytes evicted from the front of the window
func (w *SlidingWindow) Offset() uint64 {
	return w.offset
}

// Len returns the current window length
func (w *SlidingWindow) Len() int {
	return w.size
}

// Pushed returns the total number of bytes pushed into the window
func (w *SlidingWindow) Pushed() uint64 {
	return w.pushed
}

// Contents returns the window bytes oldest first
func (w *SlidingWindow) Contents() []byte {
	out := make([]byte, 0, w.size)
	if w.size < len(w.ring) {
		return append(out, w.ring[:w.size]...)
	}
	out = append(out, w.ring[w.start:]...)
	return append(out, w.ring[:w.start]...)
}
