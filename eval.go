package multicalc

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DefaultPrec is the precision of a context created without a Prec option.
// It matches the mantissa of an IEEE double, so arithmetic rounds the same way
// float64 arithmetic does.
const DefaultPrec = 53

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is DefaultPrec.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	return ctx.Clone(opts...)
}

// Eval evaluates an expression returns the result. If an error occurs, e.g.
// a division by zero or an argument to a function outside the function's
// domain, then the result is nil and ctx.Err returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	switch len(ctx.stack) {
	case 0: // do nothing
	case 1:
		ctx.stack[0] = new(big.Float).SetPrec(ctx.prec)
		ctx.stack = ctx.stack[:0]
	default:
		panic("multicalc: Eval during Eval")
	}
	err := e.n.eval(ctx)
	ctx.err = err
	if err != nil {
		ctx.stack = ctx.stack[:0]
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Panics if
// ctx has not been used to evaluate an expression. Returns nil if an error
// occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil {
		return nil
	}
	switch len(ctx.stack) {
	case 0:
		panic("multicalc: Context.Result called before evaluating any expression")
	case 1:
		return ctx.stack[0]
	default:
		panic("multicalc: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items (bad AST?)")
	}
}

// Err returns the error that occurred while evaluating the last expression
// with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. The returned
// context has no Result and is safe to use to evaluate an expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		prec:  ctx.prec,
	}
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case precopt:
			n.prec = uint(opt)
		default:
			panic("multicalc: unknown option type")
		}
	}
	// Cached numbers are only valid at the precision they were parsed with.
	if n.prec == ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = v
		}
	}
	return &n
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	t := s
	if strings.HasSuffix(t, ".") {
		t += "0"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(t, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are never signed.
		r = new(big.Float).SetInf(false)
	default:
		panic("multicalc: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// binary evaluates both operands of n, leaving the left on top of the stack,
// and returns the left and right values.
func (n *node) binary(ctx *Context) (l, r *big.Float, err error) {
	if err := n.left.eval(ctx); err != nil {
		return nil, nil, err
	}
	if err := n.right.eval(ctx); err != nil {
		return nil, nil, err
	}
	r = ctx.pop()
	l = ctx.top()
	return l, r, nil
}

// eval pushes the node's value to the context's stack.
func (n *node) eval(ctx *Context) error {
	switch n.kind {
	case nodeNum:
		ctx.push().Set(ctx.num(n.name))
	case nodeCall:
		r := ctx.push()
		k := len(ctx.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(ctx); err != nil {
				return err
			}
		}
		invoc := ctx.stack[k:len(ctx.stack):len(ctx.stack)]
		if err := n.fn.Call(ctx, invoc, r); err != nil {
			return err
		}
		ctx.stack = ctx.stack[:k]
	case nodeArg:
		panic("multicalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
		v := ctx.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(ctx); err != nil {
			return err
		}
	case nodeAdd:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return &DomainError{X: r, Func: "+"}
		}
		l.Add(l, r)
	case nodeSub:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return &DomainError{X: r, Func: "-"}
		}
		l.Sub(l, r)
	case nodeMul:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if l.IsInf() && r.Sign() == 0 || l.Sign() == 0 && r.IsInf() {
			return &DomainError{X: r, Func: "*"}
		}
		l.Mul(l, r)
	case nodeDiv:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		// Any division by zero is an error, as is inf/inf.
		if r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case nodeFloorDiv, nodeMod:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		op := "//"
		if n.kind == nodeMod {
			op = "%"
		}
		if r.Sign() == 0 {
			return &DomainError{X: r, Func: op}
		}
		x, _ := l.Float64()
		y, _ := r.Float64()
		q, m := divmod(x, y)
		v := q
		if n.kind == nodeMod {
			v = m
		}
		if math.IsNaN(v) {
			return &DomainError{X: r, Func: op}
		}
		l.SetFloat64(v)
	case nodePow:
		l, r, err := n.binary(ctx)
		if err != nil {
			return err
		}
		if err := pow(l, l, r); err != nil {
			return err
		}
	default:
		panic("multicalc: invalid AST node " + n.kind.String())
	}
	return nil
}

// divmod computes floored division and modulo so that the modulo takes the
// sign of the divisor and x == q*y + m. y must be nonzero.
func divmod(x, y float64) (q, m float64) {
	m = math.Mod(x, y)
	d := (x - m) / y
	if m != 0 {
		if (y < 0) != (m < 0) {
			m += y
			d--
		}
	} else {
		m = math.Copysign(0, y)
	}
	if d != 0 {
		q = math.Floor(d)
		if d-q > 0.5 {
			q++
		}
	} else {
		q = math.Copysign(0, x/y)
	}
	return q, m
}

// Eval is a shortcut to parse an expression using the given options and
// evaluate it in a new context with prec bits of precision.
func Eval(src io.RuneScanner, prec uint, opts ...ParseOption) (*big.Float, error) {
	ctx := NewContext(Prec(prec))
	a, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	ctx.Eval(a)
	return ctx.Result(), ctx.Err()
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, prec uint, opts ...ParseOption) (*big.Float, error) {
	return Eval(strings.NewReader(src), prec, opts...)
}
