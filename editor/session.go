package editor

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/multicalc"
)

// ErrNeedsClear is returned by Append when the session is in an error state.
// Only Clear and SubmitRaw leave the error state.
var ErrNeedsClear = errors.New("editor: clear required after error")

// Session is a basic mode calculator session: an expression state plus an
// optional history. Sessions share no mutable state with each other. A
// Session is not safe for concurrent use.
type Session struct {
	state State
	hist  *History
}

// Option is an option used when creating a session.
type Option interface {
	sessionOption(*Session)
}

type historyopt int

func (n historyopt) sessionOption(s *Session) {
	if n < 0 {
		s.hist = nil
		return
	}
	s.hist = NewHistory(int(n))
}

// HistorySize sets the number of calculations the session remembers. Zero
// selects DefaultHistorySize.
func HistorySize(n int) Option {
	if n < 0 {
		n = 0
	}
	return historyopt(n)
}

// NoHistory disables the session's history.
func NoHistory() Option {
	return historyopt(-1)
}

// NewSession creates a session in the initial state. By default it keeps a
// history of DefaultHistorySize entries.
func NewSession(opts ...Option) *Session {
	s := &Session{state: Initial(), hist: NewHistory(DefaultHistorySize)}
	for _, opt := range opts {
		opt.sessionOption(s)
	}
	return s
}

// State returns the current display state.
func (s *Session) State() State {
	return s.state
}

// Display returns the main display line and the line above it.
func (s *Session) Display() (main, sub string) {
	return s.state.Current, s.state.LastCommitted
}

// History returns the session's history, or nil if it keeps none.
func (s *Session) History() *History {
	return s.hist
}

// Clear resets the expression and the last committed annotation. History is
// kept.
func (s *Session) Clear() {
	s.state = Initial()
}

// Backspace removes the last character of the expression. A single character
// becomes "0". Ignored in an error state.
func (s *Session) Backspace() {
	if s.state.Failed() {
		return
	}
	cur := s.state.Current
	if utf8.RuneCountInString(cur) <= 1 {
		s.state.Current = "0"
		return
	}
	_, sz := utf8.DecodeLastRuneInString(cur)
	s.state.Current = cur[:len(cur)-sz]
}

// ToggleSign removes a leading minus sign or adds one. Zero has no sign, so
// toggling "0" does nothing. Ignored in an error state.
func (s *Session) ToggleSign() {
	if s.state.Failed() {
		return
	}
	cur := s.state.Current
	switch {
	case strings.HasPrefix(cur, "-"):
		cur = cur[1:]
		if cur == "" {
			cur = "0"
		}
	case cur != "0":
		cur = "-" + cur
	}
	s.state.Current = cur
}

// Append adds a token to the expression. The token must be a single
// character of the basic alphabet after normalization, so × and ÷ are
// accepted for * and /. Appending anything other than "." or "%" to "0"
// replaces it.
func (s *Session) Append(tok string) error {
	if s.state.Failed() {
		return ErrNeedsClear
	}
	t := multicalc.Normalize(tok)
	if utf8.RuneCountInString(t) != 1 || !strings.Contains(multicalc.BasicAlphabet, t) {
		return &TokenError{Token: tok}
	}
	cur := s.state.Current
	if cur == "0" && t != "." && t != "%" {
		cur = ""
	}
	s.state.Current = cur + t
	return nil
}

// Evaluate evaluates the expression with the basic grammar and commits it.
// On success the result becomes the expression and the calculation is added
// to history. On failure the session enters the error state. Evaluating in
// the error state changes nothing and returns the existing failure.
func (s *Session) Evaluate() Result {
	if s.state.Failed() {
		return Result{Err: s.state.Err}
	}
	expr := s.state.Current
	s.state.LastCommitted = expr + " ="
	v, err := multicalc.EvaluateBasic(expr)
	if err != nil {
		s.state.Current = multicalc.ErrorDisplay
		s.state.Err = err
		return Result{Err: err}
	}
	s.state.Current = editable(v)
	if s.hist != nil {
		s.hist.Add(expr, v)
	}
	return Result{Value: v}
}

// SubmitRaw replaces the expression with free text and evaluates it.
// Characters outside the basic alphabet are dropped first; if nothing
// remains, SubmitRaw is Clear. SubmitRaw leaves an error state.
func (s *Session) SubmitRaw(text string) Result {
	f := multicalc.Filter(text)
	if f == "" {
		s.Clear()
		return Result{Value: s.state.Current}
	}
	s.state.Current = f
	s.state.Err = nil
	return s.Evaluate()
}

// Do applies a command and returns the new state. The error is the one the
// command itself returns, as from Append or from a failed evaluation.
func (s *Session) Do(cmd Command) (State, error) {
	err := cmd.apply(s)
	return s.state, err
}

// TokenError is returned when appending a token that is not one character of
// the basic alphabet.
type TokenError struct {
	Token string
}

func (err *TokenError) Error() string {
	return "editor: invalid token " + strconv.Quote(err.Token)
}
