package editor

import "strconv"

// Command is an edit command that can be applied to a session with Do.
type Command interface {
	apply(s *Session) error
	String() string
}

type clearcmd struct{}

func (clearcmd) apply(s *Session) error {
	s.Clear()
	return nil
}

func (clearcmd) String() string { return "Clear" }

type backspacecmd struct{}

func (backspacecmd) apply(s *Session) error {
	s.Backspace()
	return nil
}

func (backspacecmd) String() string { return "Backspace" }

type togglecmd struct{}

func (togglecmd) apply(s *Session) error {
	s.ToggleSign()
	return nil
}

func (togglecmd) String() string { return "ToggleSign" }

type appendcmd string

func (c appendcmd) apply(s *Session) error {
	return s.Append(string(c))
}

func (c appendcmd) String() string { return "Append(" + strconv.Quote(string(c)) + ")" }

type evalcmd struct{}

func (evalcmd) apply(s *Session) error {
	return s.Evaluate().Err
}

func (evalcmd) String() string { return "Evaluate" }

type submitcmd string

func (c submitcmd) apply(s *Session) error {
	return s.SubmitRaw(string(c)).Err
}

func (c submitcmd) String() string { return "SubmitRaw(" + strconv.Quote(string(c)) + ")" }

// Clear returns a command that clears the session.
func Clear() Command { return clearcmd{} }

// Backspace returns a command that removes the last character.
func Backspace() Command { return backspacecmd{} }

// ToggleSign returns a command that toggles the leading minus sign.
func ToggleSign() Command { return togglecmd{} }

// Append returns a command that appends tok.
func Append(tok string) Command { return appendcmd(tok) }

// Evaluate returns a command that evaluates and commits the expression.
func Evaluate() Command { return evalcmd{} }

// SubmitRaw returns a command that replaces the expression with text and
// evaluates it.
func SubmitRaw(text string) Command { return submitcmd(text) }

// Keypad is the basic calculator's button grid, row by row.
var Keypad = [5][4]string{
	{"C", "⌫", "±", "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", ".", "%", "="},
}

// ParseKey returns the command for a keypad label. Any label that is a
// single character of the basic alphabet, such as "(" or "*", is an append.
func ParseKey(label string) (Command, error) {
	switch label {
	case "C":
		return Clear(), nil
	case "⌫":
		return Backspace(), nil
	case "±":
		return ToggleSign(), nil
	case "=":
		return Evaluate(), nil
	}
	probe := Session{state: Initial()}
	if err := probe.Append(label); err != nil {
		return nil, &KeyError{Label: label}
	}
	return Append(label), nil
}

// KeyError is returned by ParseKey for unknown labels.
type KeyError struct {
	Label string
}

func (err *KeyError) Error() string {
	return "editor: unknown key " + strconv.Quote(err.Label)
}
