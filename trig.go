package multicalc

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// trig identifies a circular function computed by reduction modulo π/2.
type trig int

const (
	trigSin trig = iota
	trigCos
	trigTan
)

// eval sets out to the function of in, to the precision of out. The argument
// is reduced against π/2 computed with enough bits to cover its exponent, so
// large arguments lose nothing to the reduction.
func (f trig) eval(out, in *big.Float) *big.Float {
	if in.IsInf() {
		panic(DomainError{X: new(big.Float).Copy(in)})
	}
	if in.Sign() == 0 {
		if f == trigCos {
			return out.SetInt64(1)
		}
		return out.Set(in)
	}
	prec := out.Prec()
	if prec == 0 {
		prec = DefaultPrec
	}
	work := prec + guard
	if e := in.MantExp(nil); e > 0 {
		work += uint(e)
	}
	x := new(big.Float).SetPrec(work).Set(in)
	halfpi := bigfloat.Pi(new(big.Float).SetPrec(work))
	halfpi.SetMantExp(halfpi, -1)

	// k is the multiple of π/2 nearest x, and r is what remains, |r| <= π/4.
	q := new(big.Float).SetPrec(work).Quo(x, halfpi)
	half := big.NewFloat(0.5)
	if q.Signbit() {
		q.Sub(q, half)
	} else {
		q.Add(q, half)
	}
	k, _ := q.Int(nil)
	r := new(big.Float).SetPrec(work).SetInt(k)
	r.Mul(r, halfpi)
	r.Sub(x, r)

	s, c := sincos(r, work)
	switch new(big.Int).Mod(k, big.NewInt(4)).Int64() {
	case 1:
		s, c = c, s.Neg(s)
	case 2:
		s, c = s.Neg(s), c.Neg(c)
	case 3:
		s, c = c.Neg(c), s
	}
	switch f {
	case trigSin:
		return out.Set(s)
	case trigCos:
		return out.Set(c)
	}
	if c.Sign() == 0 {
		panic(DomainError{X: new(big.Float).Copy(in)})
	}
	return out.Quo(s, c)
}

// sincos computes the sine and cosine of a small r by their Taylor series, to
// prec bits.
func sincos(r *big.Float, prec uint) (s, c *big.Float) {
	r2 := new(big.Float).SetPrec(prec).Mul(r, r)
	s = new(big.Float).SetPrec(prec).Set(r)
	c = new(big.Float).SetPrec(prec).SetInt64(1)
	st := new(big.Float).SetPrec(prec).Set(r)
	ct := new(big.Float).SetPrec(prec).SetInt64(1)
	d := new(big.Float).SetPrec(prec)
	for n := int64(1); ; n++ {
		st.Mul(st, r2)
		st.Quo(st, d.SetInt64(2*n*(2*n+1)))
		st.Neg(st)
		ct.Mul(ct, r2)
		ct.Quo(ct, d.SetInt64((2*n-1)*(2*n)))
		ct.Neg(ct)
		s.Add(s, st)
		c.Add(c, ct)
		if negligible(st, s, prec) && negligible(ct, c, prec) {
			return s, c
		}
	}
}

// negligible reports whether adding t to sum can no longer change sum at prec
// bits.
func negligible(t, sum *big.Float, prec uint) bool {
	if t.Sign() == 0 {
		return true
	}
	return t.MantExp(nil) < sum.MantExp(nil)-int(prec)-2
}
