package multicalc

import (
	"errors"
	"math"
	"math/big"
	"sort"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. The function should set r to its
// result and should not use the value of r otherwise.
type Func interface {
	// Call evaluates the function. The function arguments are passed in invoc,
	// which has a length for which CanCall returned true. The function must
	// set r to its result and should not use the value of r otherwise. Call
	// may modify the elements of invoc.
	Call(ctx *Context, invoc []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// A function that can be called with zero arguments is a constant: it is
	// written as a bare name, and a bracketed list after it is an error. Any
	// other function must be followed by a bracketed argument list.
	CanCall(n int) bool
}

// globalfuncs is the scientific symbol table. It is never modified.
var globalfuncs = map[string]Func{
	"sin":   newMonadic("sin", trigSin.eval),
	"cos":   newMonadic("cos", trigCos.eval),
	"tan":   newMonadic("tan", trigTan.eval),
	"log":   newMonadic("log", positive(guarded(bigfloat.Log))),
	"log10": newMonadic("log10", positive(guarded(log10))),
	"sqrt":  newMonadic("sqrt", nonnegative((*big.Float).Sqrt)),
	"abs":   newMonadic("abs", (*big.Float).Abs),

	// constants
	"pi": newNiladic(constant(bigfloat.Pi)),
	"e": newNiladic(constant(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetPrec(out.Prec()).SetInt64(1)
		return bigfloat.Exp(out, &one)
	})),
}

// guard is the number of extra bits carried through transcendental functions
// before rounding to the context's precision.
const guard = 64

// guarded evaluates f with guard bits of extra precision.
func guarded(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		work := out.Prec() + guard
		x := new(big.Float).SetPrec(work).Set(in)
		y := new(big.Float).SetPrec(work)
		f(y, x)
		return out.Set(y)
	}
}

// constant computes f with guard bits of extra precision.
func constant(f func(out *big.Float) *big.Float) func(out *big.Float) *big.Float {
	return func(out *big.Float) *big.Float {
		y := new(big.Float).SetPrec(out.Prec() + guard)
		f(y)
		return out.Set(y)
	}
}

func log10(out, in *big.Float) *big.Float {
	bigfloat.Log(out, in)
	ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
	bigfloat.Log(ten, ten)
	return out.Quo(out, ten)
}

// Symbols returns the sorted names in the scientific symbol table.
func Symbols() []string {
	s := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// positive restricts f to arguments greater than zero.
func positive(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		if in.Sign() <= 0 {
			panic(DomainError{X: new(big.Float).Copy(in)})
		}
		return f(out, in)
	}
}

// nonnegative restricts f to arguments which are not less than zero.
func nonnegative(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		if in.Sign() < 0 {
			panic(DomainError{X: new(big.Float).Copy(in)})
		}
		return f(out, in)
	}
}

type monadic struct {
	name string
	f    func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	in := invoc[0]
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		e, ok := p.(error)
		if !ok {
			panic(p)
		}
		var de DomainError
		if errors.As(e, &de) {
			de.Func = m.name
			err = &de
			return
		}
		if errors.As(e, &big.ErrNaN{}) {
			err = &DomainError{X: new(big.Float).Copy(in), Func: m.name}
			return
		}
		panic(e)
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// newMonadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with a
// DomainError, or an error of type big.ErrNaN, or one that unwraps to either.
func newMonadic(name string, f func(out, in *big.Float) *big.Float) Func {
	return monadic{name, f}
}

type dyadic struct {
	f func(out, x, y *big.Float) error
}

func (d dyadic) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	return d.f(r, invoc[0], invoc[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// newDyadic wraps a function of two variables into a Func. f must set out to its
// result and report domain errors by returning them.
func newDyadic(f func(out, x, y *big.Float) error) Func {
	return dyadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, invoc []*big.Float, r *big.Float) (err error) {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

func (n niladic) CanCall(k int) bool {
	return k == 0
}

// newNiladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike newMonadic, the wrapped function is expected
// never to panic.
func newNiladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// pow sets out to x**y. A zero base with a negative exponent and a negative
// base with a fractional exponent are domain errors, as are infinite
// operands.
func pow(out, x, y *big.Float) error {
	switch {
	case y.Sign() == 0:
		out.SetInt64(1)
		return nil
	case x.IsInf() || y.IsInf():
		return &DomainError{X: new(big.Float).Copy(y), Arg: 2, Func: "**"}
	case x.Sign() == 0:
		if y.Signbit() {
			return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "**"}
		}
		out.SetInt64(0)
		return nil
	case x.Signbit() && !y.IsInt():
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Func: "**"}
	}
	neg := x.Signbit() && odd(y)
	mant := new(big.Float)
	xe := x.MantExp(mant)
	mf, _ := mant.Abs(mant).Float64()
	lx := float64(xe) + math.Log2(mf)
	yf, _ := y.Float64()
	// Decide overflow and underflow before doing any work, so that huge
	// exponents cost nothing.
	switch t := yf * lx; {
	case lx == 0:
		out.SetInt64(1)
	case t > 1<<30:
		out.SetInf(false)
	case t < -(1 << 30):
		out.SetInt64(0)
	case y.IsInt():
		powint(out, x, y)
		return nil
	default:
		prec := out.Prec()
		if prec == 0 {
			prec = x.Prec()
		}
		work := prec + guard
		r := new(big.Float).SetPrec(work)
		bigfloat.Pow(r, new(big.Float).SetPrec(work).Set(x), new(big.Float).SetPrec(work).Set(y))
		out.SetPrec(prec).Set(r)
		return nil
	}
	if neg {
		out.Neg(out)
	}
	return nil
}

// odd reports whether y is an odd integer.
func odd(y *big.Float) bool {
	if !y.IsInt() || y.MantExp(nil) > int(y.Prec()) {
		// Every mantissa bit has weight at least 2.
		return false
	}
	i, _ := y.Int(nil)
	return i.Bit(0) != 0
}

// powint sets out to x**y where y is an integer, by repeated squaring at
// extra precision.
func powint(out, x, y *big.Float) {
	prec := out.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	work := prec + guard
	e, _ := y.Int(nil)
	neg := e.Sign() < 0
	e.Abs(e)
	acc := new(big.Float).SetPrec(work).SetInt64(1)
	base := new(big.Float).SetPrec(work).Set(x)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) != 0 {
			acc.Mul(acc, base)
		}
		base.Mul(base, base)
	}
	if neg {
		acc.Quo(new(big.Float).SetPrec(work).SetInt64(1), acc)
	}
	out.SetPrec(prec).Set(acc)
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
