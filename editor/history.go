package editor

import (
	"strings"

	"github.com/zephyrtronium/multicalc"
)

// DefaultHistorySize is the number of entries a History keeps if no other
// bound is given.
const DefaultHistorySize = 15

// History is a bounded log of successful calculations. When full, adding an
// entry evicts the oldest one. The zero value is not usable; use NewHistory.
type History struct {
	// ring holds entries in insertion order starting at head.
	ring []string
	head int
	n    int
}

// NewHistory creates a history which keeps the max most recent entries. If
// max is not positive, DefaultHistorySize is used.
func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{ring: make([]string, max)}
}

// Add records a calculation as "<expr> = <result>". Blank expressions and
// failures are not recorded; Add reports whether the entry was kept.
func (h *History) Add(expr, result string) bool {
	if strings.TrimSpace(expr) == "" || result == "" || result == multicalc.ErrorDisplay {
		return false
	}
	e := expr + " = " + result
	if h.n < len(h.ring) {
		h.ring[(h.head+h.n)%len(h.ring)] = e
		h.n++
		return true
	}
	h.ring[h.head] = e
	h.head = (h.head + 1) % len(h.ring)
	return true
}

// Entries returns the recorded calculations, most recent first.
func (h *History) Entries() []string {
	r := make([]string, h.n)
	for i := range r {
		r[i] = h.ring[(h.head+h.n-1-i)%len(h.ring)]
	}
	return r
}

// Len returns the number of recorded calculations.
func (h *History) Len() int {
	return h.n
}

// Cap returns the maximum number of recorded calculations.
func (h *History) Cap() int {
	return len(h.ring)
}

// Reset removes all entries.
func (h *History) Reset() {
	for i := range h.ring {
		h.ring[i] = ""
	}
	h.head, h.n = 0, 0
}
