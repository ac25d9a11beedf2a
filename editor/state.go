// Package editor implements the key-by-key expression editor of a basic
// calculator, its history of recent calculations, and the free text buffer of
// a scientific calculator.
package editor

import (
	"strconv"
	"strings"

	"github.com/zephyrtronium/multicalc"
)

// State is the display state of a basic mode session.
type State struct {
	// Current is the expression under construction, or the result of the
	// last evaluation. It is never empty. After a failed evaluation it is
	// multicalc.ErrorDisplay.
	Current string
	// LastCommitted is the most recently evaluated expression followed by
	// " =", or empty if nothing has been evaluated since the last clear.
	LastCommitted string
	// Err is the cause of the last failed evaluation. It is nil unless the
	// state is an error state.
	Err error
}

// Initial returns the state of a new or cleared session.
func Initial() State {
	return State{Current: "0"}
}

// Failed reports whether s is an error state.
func (s State) Failed() bool {
	return s.Err != nil
}

// Result is the outcome of an evaluation.
type Result struct {
	// Value is the canonical result. It is empty on failure, and empty for a
	// scientific expression that has not produced a result.
	Value string
	// Err is the failure, if any.
	Err error
}

// Display returns the text to show for r.
func (r Result) Display() string {
	return multicalc.Display(r.Value, r.Err)
}

// editable converts a canonical result into text that stays within the basic
// alphabet, so that a result can be edited further. Exponent notation is
// expanded to positional notation.
func editable(res string) string {
	if !strings.ContainsAny(res, "eE") {
		return res
	}
	f, err := strconv.ParseFloat(res, 64)
	if err != nil {
		return res
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
