package multicalc

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Grammar selects an expression language.
type Grammar int

const (
	// Basic is arithmetic over BasicAlphabet with no identifiers.
	Basic Grammar = iota
	// Scientific is arithmetic plus the names in the scientific symbol
	// table.
	Scientific
)

func (g Grammar) String() string {
	switch g {
	case Basic:
		return "basic"
	case Scientific:
		return "scientific"
	default:
		return "Grammar(" + strconv.Itoa(int(g)) + ")"
	}
}

// BasicAlphabet contains every character allowed in a normalized basic
// expression.
const BasicAlphabet = "0123456789.+-*/()%"

// ErrorDisplay is the text shown in place of a result when evaluation fails.
const ErrorDisplay = "Error"

// glyphs maps calculator key glyphs onto their ASCII operators.
var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
)

// Normalize replaces the calculator glyphs ×, ÷ and − with the operators they
// stand for and removes whitespace. No other character is changed, so
// look-alikes such as superscript or full-width digits stay outside
// BasicAlphabet.
func Normalize(s string) string {
	s = glyphs.Replace(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Filter normalizes s and then drops every character outside BasicAlphabet.
func Filter(s string) string {
	return strings.Map(func(r rune) rune {
		if !strings.ContainsRune(BasicAlphabet, r) {
			return -1
		}
		return r
	}, Normalize(s))
}

func checkAlphabet(s string) error {
	col := 0
	for _, r := range s {
		col++
		if !strings.ContainsRune(BasicAlphabet, r) {
			return &AlphabetError{Col: col, Rune: r}
		}
	}
	return nil
}

// EvaluateBasic evaluates an arithmetic expression. Glyphs and whitespace are
// normalized first; any remaining character outside BasicAlphabet is an
// error. An empty expression evaluates to "0". Every failure is an
// *EvaluationError.
func EvaluateBasic(expr string) (string, error) {
	s := Normalize(expr)
	if err := checkAlphabet(s); err != nil {
		return "", &EvaluationError{Grammar: Basic, Expr: expr, Err: err}
	}
	if s == "" {
		return "0", nil
	}
	return evaluate(Basic, expr, s, Arithmetic())
}

// EvaluateScientific evaluates an expression which may use the functions and
// constants of the scientific symbol table, plus any added by opts. A blank
// expression evaluates to the empty string, meaning no result. Every failure
// is an *EvaluationError.
func EvaluateScientific(expr string, opts ...ParseOption) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return "", nil
	}
	return evaluate(Scientific, expr, norm.NFKC.String(expr), opts...)
}

// Evaluate evaluates expr using the grammar g.
func (g Grammar) Evaluate(expr string, opts ...ParseOption) (string, error) {
	if g == Basic {
		return EvaluateBasic(expr)
	}
	return EvaluateScientific(expr, opts...)
}

func evaluate(g Grammar, orig, src string, opts ...ParseOption) (res string, err error) {
	defer func() {
		// Input never escapes as a panic.
		if p := recover(); p != nil {
			res, err = "", &EvaluationError{Grammar: g, Expr: orig, Err: fmt.Errorf("evaluation fault: %v", p)}
		}
	}()
	r, err := EvalString(src, DefaultPrec, opts...)
	if err != nil {
		return "", &EvaluationError{Grammar: g, Expr: orig, Err: err}
	}
	if !Finite(r) {
		return "", &EvaluationError{Grammar: g, Expr: orig, Err: &RangeError{X: new(big.Float).Copy(r)}}
	}
	return Format(r), nil
}

// Display collapses an evaluation outcome to display text.
func Display(res string, err error) string {
	if err != nil {
		return ErrorDisplay
	}
	return res
}

// EvaluationError is the error returned by the evaluators for any malformed
// or disallowed expression and any runtime arithmetic fault. It unwraps to
// the underlying cause.
type EvaluationError struct {
	// Grammar is the grammar used.
	Grammar Grammar
	// Expr is the expression as given.
	Expr string
	// Err is the cause.
	Err error
}

func (err *EvaluationError) Error() string {
	return "evaluating " + err.Grammar.String() + " expression " + strconv.Quote(err.Expr) + ": " + err.Err.Error()
}

func (err *EvaluationError) Unwrap() error {
	return err.Err
}

// RangeError is an error indicating a result too large in magnitude to
// represent.
type RangeError struct {
	// X is the result.
	X *big.Float
}

func (err *RangeError) Error() string {
	return "result " + err.X.Text('g', 10) + " out of range"
}
