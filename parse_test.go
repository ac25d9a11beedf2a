package multicalc

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"testing"
)

// diff finds the first in-order node of n that differs from m, or nil, nil if
// the two ASTs are equal. If any node is nodeNone, it is returned.
func (n *node) diff(m *node) (*node, *node) {
	if n == nil {
		if m != nil {
			return n, m
		}
		return nil, nil
	}
	if m == nil {
		return n, m
	}
	if n.kind == nodeNone || m.kind == nodeNone {
		return n, m
	}
	if n.kind != m.kind {
		return n, m
	}
	switch n.kind {
	case nodeNum:
		if n.name != m.name {
			return n, m
		}
	case nodeCall:
		if n.name != m.name {
			return n, m
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeArg, nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
		if d, e := n.right.diff(m.right); d != nil || e != nil {
			return d, e
		}
	case nodeNeg, nodeNop:
		if d, e := n.left.diff(m.left); d != nil || e != nil {
			return d, e
		}
	default:
		panic(fmt.Errorf("invalid node kind: n=%+v m=%+v", n, m))
	}
	return nil, nil
}

type mockfn struct {
	can []int
}

func mockFunc(n ...int) Func {
	return mockfn{can: n}
}

func (f mockfn) Call(ctx *Context, invoc []*big.Float, r *big.Float) error {
	return nil
}

func (f mockfn) CanCall(n int) bool {
	for _, v := range f.can {
		if v == n {
			return true
		}
	}
	return false
}

func num(s string) *node {
	return &node{kind: nodeNum, name: s}
}

func bin(k nodeKind, l, r *node) *node {
	return &node{kind: k, left: l, right: r}
}

func un(k nodeKind, l *node) *node {
	return &node{kind: k, left: l}
}

func call(name string, args ...*node) *node {
	n := &node{kind: nodeCall, name: name}
	l := n
	for _, a := range args {
		l.right = &node{kind: nodeArg, left: a}
		l = l.right
	}
	return n
}

func TestOpPrecsExist(t *testing.T) {
	for _, r := range "+-*/%" {
		b := binop(string(r))
		u := unop(string(r))
		if b.op == nodeNone && u.op == nodeNone {
			t.Errorf("no operator for %c", r)
		}
	}
	for _, s := range []string{"**", "//"} {
		if binop(s).op == nodeNone {
			t.Errorf("no operator for %s", s)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []ParseOption
		tree *node
	}{
		{"num", "1", nil, num("1")},
		{"real", "1.5", nil, num("1.5")},
		{"exp", "1e5", nil, num("1e5")},
		{"add", "1+2", nil, bin(nodeAdd, num("1"), num("2"))},
		{"prec", "1+2*3", nil, bin(nodeAdd, num("1"), bin(nodeMul, num("2"), num("3")))},
		{"prec-rev", "1*2+3", nil, bin(nodeAdd, bin(nodeMul, num("1"), num("2")), num("3"))},
		{"left-assoc", "1-2-3", nil, bin(nodeSub, bin(nodeSub, num("1"), num("2")), num("3"))},
		{"mixed-mul", "7//2%3", nil, bin(nodeMod, bin(nodeFloorDiv, num("7"), num("2")), num("3"))},
		{"div", "7/2", nil, bin(nodeDiv, num("7"), num("2"))},
		{"glyphs", "2×3÷4", nil, bin(nodeDiv, bin(nodeMul, num("2"), num("3")), num("4"))},
		{"pow-right", "2**3**2", nil, bin(nodePow, num("2"), bin(nodePow, num("3"), num("2")))},
		{"neg-pow", "-2**2", nil, un(nodeNeg, bin(nodePow, num("2"), num("2")))},
		{"pow-neg", "2**-1", nil, bin(nodePow, num("2"), un(nodeNeg, num("1")))},
		{"neg-mul", "-2*3", nil, bin(nodeMul, un(nodeNeg, num("2")), num("3"))},
		{"mul-neg", "2*-3", nil, bin(nodeMul, num("2"), un(nodeNeg, num("3")))},
		{"double-neg", "--5", nil, un(nodeNeg, un(nodeNeg, num("5")))},
		{"plus", "+1", nil, un(nodeNop, num("1"))},
		{"group", "(1+2)*3", nil, bin(nodeMul, bin(nodeAdd, num("1"), num("2")), num("3"))},
		{"nest", "((1))", nil, num("1")},
		{"spaces", " 1 +\t2 ", nil, bin(nodeAdd, num("1"), num("2"))},
		{"const", "pi", nil, call("pi")},
		{"call", "sin(pi/2)", nil, call("sin", bin(nodeDiv, call("pi"), num("2")))},
		{"call-add", "sqrt(4)+e", nil, bin(nodeAdd, call("sqrt", num("4")), call("e"))},
		{"pow-func", "pow(2, 3)", []ParseOption{WithPow()}, call("pow", num("2"), num("3"))},
		{"mock", "f(1, 2)", []ParseOption{&funcopt{"f", mockFunc(1, 2)}}, call("f", num("1"), num("2"))},
		{"deep-nest", strings.Repeat("(", 100) + "1" + strings.Repeat(")", 100), nil, num("1")},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src, c.opts...)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if d, e := a.n.diff(c.tree); d != nil || e != nil {
				t.Errorf("%q parsed wrong:\n\twant %v\n\tgot  %v\n\tat   %v vs %v", c.src, c.tree, a.n, e, d)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		opts []ParseOption
		err  InputError
	}{
		{"empty", "", nil, (*EmptyExpressionError)(nil)},
		{"dangling", "1+", nil, (*EmptyExpressionError)(nil)},
		{"empty-group", "()", nil, (*EmptyExpressionError)(nil)},
		{"unclosed", "(1", nil, (*BracketError)(nil)},
		{"unopened", "1)", nil, (*BracketError)(nil)},
		{"separator", "1,2", nil, (*SeparatorError)(nil)},
		{"group-separator", "(1,2)", nil, (*SeparatorError)(nil)},
		{"juxtapose-group", "2(3)", nil, (*MissingOperatorError)(nil)},
		{"juxtapose-num", "2 3", nil, (*MissingOperatorError)(nil)},
		{"juxtapose-const", "2 pi", nil, (*MissingOperatorError)(nil)},
		{"unary-mul", "*2", nil, (*OperatorError)(nil)},
		{"unary-pow", "**2", nil, (*OperatorError)(nil)},
		{"unary-mod", "%2", nil, (*OperatorError)(nil)},
		{"name", "x", nil, (*NameError)(nil)},
		{"attr", "sin.x", nil, (*LexError)(nil)},
		{"import", "__import__('os')", nil, (*NameError)(nil)},
		{"bare-func", "sin", nil, (*CallError)(nil)},
		{"func-no-parens", "sin 1", nil, (*CallError)(nil)},
		{"call-const", "pi(1)", nil, (*CallError)(nil)},
		{"call-const-empty", "pi()", nil, (*CallError)(nil)},
		{"too-many", "sin(1,2)", nil, (*CallError)(nil)},
		{"too-few", "abs()", nil, (*CallError)(nil)},
		{"call-unclosed", "sin(", nil, (*BracketError)(nil)},
		{"call-unclosed-arg", "sin(1", nil, (*BracketError)(nil)},
		{"call-trailing-sep", "sin(1,)", nil, (*EmptyExpressionError)(nil)},
		{"no-pow", "pow(1, 2)", nil, (*NameError)(nil)},
		{"removed", "sin(1)", []ParseOption{&funcopt{"sin", nil}}, (*NameError)(nil)},
		{"lex", "1$", nil, (*LexError)(nil)},
		{"arith-const", "pi", []ParseOption{Arithmetic()}, (*NameError)(nil)},
		{"arith-exp", "1e5", []ParseOption{Arithmetic()}, (*LexError)(nil)},
		{"nest-brackets", strings.Repeat("(", 1000) + "1" + strings.Repeat(")", 1000), nil, (*NestingError)(nil)},
		{"nest-unclosed", strings.Repeat("(", 100000), nil, (*NestingError)(nil)},
		{"nest-unary", strings.Repeat("-", 1000) + "1", nil, (*NestingError)(nil)},
		{"nest-pow", "2" + strings.Repeat("**2", 1000), nil, (*NestingError)(nil)},
		{"nest-calls", strings.Repeat("abs(", 1000) + "1" + strings.Repeat(")", 1000), nil, (*NestingError)(nil)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := ParseString(c.src, c.opts...)
			if err == nil {
				t.Fatalf("%q parsed as %v; expected error", c.src, a)
			}
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Errorf("%q gave %#v (%v); want %T", c.src, err, err, c.err)
			}
			ie, ok := err.(InputError)
			if !ok {
				t.Fatalf("%#v is not an InputError", err)
			}
			if ie.Pos() < 1 {
				t.Errorf("%q gave error with position %d", c.src, ie.Pos())
			}
		})
	}
}

func TestExprString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1", "(1)"},
		{"1+2*3", "([1] + [(2) * (3)])"},
		{"-2**2", "(-[(2) ** (2)])"},
		{"sin(pi)", "(sin[(pi)])"},
		{"7//2%3", "([(7) // (2)] % [3])"},
	}
	for _, c := range cases {
		a, err := ParseString(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if got := a.String(); got != c.want {
			t.Errorf("%q formatted wrong: want %q, got %q", c.src, c.want, got)
		}
	}
}
