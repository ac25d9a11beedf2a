package editor

import "github.com/zephyrtronium/multicalc"

// Snippets are the texts inserted by the scientific calculator's function
// buttons.
var Snippets = []string{"sin(", "cos(", "tan(", "sqrt(", "log(", "log10(", "pi", "e"}

// SciBuffer is the free text buffer of a scientific calculator. Unlike a
// Session it does no per-key editing: function buttons insert snippets, the
// user may replace the text outright, and Calculate evaluates the whole
// buffer. A SciBuffer is not safe for concurrent use.
type SciBuffer struct {
	expr string
	res  Result
	opts []multicalc.ParseOption
}

// NewSciBuffer creates an empty buffer whose expressions are parsed with the
// given options in addition to the scientific symbol table.
func NewSciBuffer(opts ...multicalc.ParseOption) *SciBuffer {
	return &SciBuffer{opts: opts}
}

// Insert appends a snippet to the expression.
func (b *SciBuffer) Insert(snippet string) {
	b.expr += snippet
}

// Set replaces the expression.
func (b *SciBuffer) Set(expr string) {
	b.expr = expr
}

// Expr returns the expression.
func (b *SciBuffer) Expr() string {
	return b.expr
}

// Calculate evaluates the expression and records the result. The expression
// is kept so that it can be edited and calculated again. A blank expression
// has an empty result.
func (b *SciBuffer) Calculate() Result {
	v, err := multicalc.EvaluateScientific(b.expr, b.opts...)
	b.res = Result{Value: v, Err: err}
	return b.res
}

// Result returns the result of the last Calculate.
func (b *SciBuffer) Result() Result {
	return b.res
}

// HasResult reports whether there is a result to show. Blank expressions
// produce none.
func (b *SciBuffer) HasResult() bool {
	return b.res.Err != nil || b.res.Value != ""
}
