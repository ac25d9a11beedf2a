package multicalc_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zephyrtronium/multicalc"
)

func TestEvaluateBasic(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2+2", "4"},
		{"7/2", "3.5"},
		{"6/3", "2"},
		{"12+3", "15"},
		{"1+2*3", "7"},
		{"(1+2)*3", "9"},
		{"10-4-3", "3"},
		{"2**3**2", "512"},
		{"-2**2", "-4"},
		{"2**-1", "0.5"},
		{"7//2", "3"},
		{"-7//2", "-4"},
		{"-7%3", "2"},
		{"7%-3", "-2"},
		{"10%3", "1"},
		{"0.1+0.2", "0.30000000000000004"},
		{"1/3", "0.3333333333333333"},
		{"2/3", "0.6666666666666666"},
		{"1/8", "0.125"},
		{"1/10000", "0.0001"},
		{"1/100000", "1e-05"},
		{"10**20", "100000000000000000000"},
		{"--5", "5"},
		{"-0", "0"},
		{"0*-1", "0"},
		{"5.", "5"},
		{".5", "0.5"},
		{"00", "0"},
		{"0.5*4", "2"},
		{" 1 + 1 ", "2"},
		{"3×4", "12"},
		{"8÷2", "4"},
		{"", "0"},
		{"   ", "0"},
	}
	for _, c := range cases {
		got, err := multicalc.EvaluateBasic(c.src)
		if err != nil {
			t.Errorf("%q gave error: %v", c.src, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestEvaluateBasicErrors(t *testing.T) {
	cases := []struct {
		src   string
		cause interface{}
	}{
		{"2+a", new(*multicalc.AlphabetError)},
		{"1e5", new(*multicalc.AlphabetError)},
		{"pi", new(*multicalc.AlphabetError)},
		{"sqrt(4)", new(*multicalc.AlphabetError)},
		{"__import__('os').system('ls')", new(*multicalc.AlphabetError)},
		{"1,5", new(*multicalc.AlphabetError)},
		{"2+3;", new(*multicalc.AlphabetError)},
		{"2²", new(*multicalc.AlphabetError)},
		{"2¹+1", new(*multicalc.AlphabetError)},
		{"１２＋３", new(*multicalc.AlphabetError)},
		{"½", new(*multicalc.AlphabetError)},
		{"2·3", new(*multicalc.AlphabetError)},
		{"5/0", new(*multicalc.DomainError)},
		{"5//0", new(*multicalc.DomainError)},
		{"5%0", new(*multicalc.DomainError)},
		{"0**-1", new(*multicalc.DomainError)},
		{"(-8)**0.5", new(*multicalc.DomainError)},
		{"10**400", new(*multicalc.RangeError)},
		{"(1+2", new(*multicalc.BracketError)},
		{"1+2)", new(*multicalc.BracketError)},
		{"1+", new(*multicalc.EmptyExpressionError)},
		{"()", new(*multicalc.EmptyExpressionError)},
		{"*2", new(*multicalc.OperatorError)},
		{"50%", new(*multicalc.EmptyExpressionError)},
		{"2(3)", new(*multicalc.MissingOperatorError)},
		{"05", new(*multicalc.LexError)},
		{"1..2", new(*multicalc.LexError)},
		{".", new(*multicalc.LexError)},
		{strings.Repeat("(", 300) + "1" + strings.Repeat(")", 300), new(*multicalc.NestingError)},
		{strings.Repeat("-", 100000) + "1", new(*multicalc.NestingError)},
	}
	for _, c := range cases {
		got, err := multicalc.EvaluateBasic(c.src)
		if err == nil {
			t.Errorf("%q gave %q; expected error", c.src, got)
			continue
		}
		var ee *multicalc.EvaluationError
		if !errors.As(err, &ee) {
			t.Errorf("%q gave %#v, not *EvaluationError", c.src, err)
			continue
		}
		if ee.Grammar != multicalc.Basic || ee.Expr != c.src {
			t.Errorf("%q gave error for %v %q", c.src, ee.Grammar, ee.Expr)
		}
		if !errors.As(err, c.cause) {
			t.Errorf("%q gave cause %#v, want %T", c.src, ee.Err, c.cause)
		}
		if multicalc.Display(got, err) != multicalc.ErrorDisplay {
			t.Errorf("%q displays as %q", c.src, multicalc.Display(got, err))
		}
	}
}

func TestEvaluateScientific(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"sin(pi/2)", "1"},
		{"sqrt(16)", "4"},
		{"sqrt(2)", "1.4142135623730951"},
		{"log10(10)", "1"},
		{"log10(1000)", "3"},
		{"log(10)", "2.302585092994046"},
		{"pi", "3.141592653589793"},
		{"2*pi", "6.283185307179586"},
		{"e", "2.718281828459045"},
		{"abs(-3)", "3"},
		{"abs(-2.5)", "2.5"},
		{"cos(0) + tan(0)", "1"},
		{"sin(pi/2) + log10(100)", "3"},
		{"1e3", "1000"},
		{"1.5e-3", "0.0015"},
		{"2**10", "1024"},
		{"7/2", "3.5"},
		{"(1+2)*3", "9"},
		{"ｓｑｒｔ(9)", "3"},
		{"sin(pi)", "1.2246467991473532e-16"},
		{"cos(pi)", "-1"},
		{"cos(pi/2)", "6.123233995736766e-17"},
		{"tan(pi/2)", "16331239353195370"},
		{"tan(pi/4)", "0.9999999999999999"},
		{"sin(-pi/2)", "-1"},
		{"sin(1e22)", "-0.8522008497671888"},
		{"sin(1)", "0.8414709848078965"},
		{"cos(1)", "0.5403023058681398"},
		{"tan(1)", "1.5574077246549023"},
		{"", ""},
		{"  \t", ""},
	}
	for _, c := range cases {
		got, err := multicalc.EvaluateScientific(c.src)
		if err != nil {
			t.Errorf("%q gave error: %v", c.src, err)
			continue
		}
		if got != c.want {
			t.Errorf("%q: want %q, got %q", c.src, c.want, got)
		}
	}
}

func TestLogIsNatural(t *testing.T) {
	ln, err := multicalc.EvaluateScientific("log(10)")
	if err != nil {
		t.Fatal(err)
	}
	lg, err := multicalc.EvaluateScientific("log10(10)")
	if err != nil {
		t.Fatal(err)
	}
	if ln == lg {
		t.Errorf("log(10) and log10(10) are both %s", ln)
	}
	if !strings.HasPrefix(ln, "2.302585") {
		t.Errorf("log(10) is %s", ln)
	}
}

func TestEvaluateScientificPow(t *testing.T) {
	got, err := multicalc.EvaluateScientific("pow(2, 10)", multicalc.WithPow())
	if err != nil {
		t.Fatal(err)
	}
	if got != "1024" {
		t.Errorf("pow(2, 10) is %q", got)
	}
	if _, err := multicalc.EvaluateScientific("pow(2, 10)"); !errors.As(err, new(*multicalc.NameError)) {
		t.Errorf("pow without WithPow gave %v", err)
	}
	if _, err := multicalc.EvaluateScientific("pow(0, -1)", multicalc.WithPow()); !errors.As(err, new(*multicalc.DomainError)) {
		t.Errorf("pow(0, -1) gave %v", err)
	}
}

func TestEvaluateScientificErrors(t *testing.T) {
	cases := []struct {
		src   string
		cause interface{}
	}{
		{"sqrt(-1)", new(*multicalc.DomainError)},
		{"log(0)", new(*multicalc.DomainError)},
		{"log(-1)", new(*multicalc.DomainError)},
		{"log10(0)", new(*multicalc.DomainError)},
		{"1/0", new(*multicalc.DomainError)},
		{"foo(1)", new(*multicalc.NameError)},
		{"x", new(*multicalc.NameError)},
		{"exp(1)", new(*multicalc.NameError)},
		{"__import__('os')", new(*multicalc.NameError)},
		{"pi.real", new(*multicalc.LexError)},
		{"'a'", new(*multicalc.LexError)},
		{"x = 1", new(*multicalc.NameError)},
		{"1; 2", new(*multicalc.LexError)},
		{"sin", new(*multicalc.CallError)},
		{"sin 1", new(*multicalc.CallError)},
		{"pi()", new(*multicalc.CallError)},
		{"sin(1, 2)", new(*multicalc.CallError)},
		{"2 pi", new(*multicalc.MissingOperatorError)},
		{"sin(", new(*multicalc.BracketError)},
		{"exp", new(*multicalc.NameError)},
		{strings.Repeat("sqrt(", 500) + "4" + strings.Repeat(")", 500), new(*multicalc.NestingError)},
	}
	for _, c := range cases {
		got, err := multicalc.EvaluateScientific(c.src)
		if err == nil {
			t.Errorf("%q gave %q; expected error", c.src, got)
			continue
		}
		var ee *multicalc.EvaluationError
		if !errors.As(err, &ee) {
			t.Errorf("%q gave %#v, not *EvaluationError", c.src, err)
			continue
		}
		if ee.Grammar != multicalc.Scientific {
			t.Errorf("%q gave error for %v", c.src, ee.Grammar)
		}
		if !errors.As(err, c.cause) {
			t.Errorf("%q gave cause %#v, want %T", c.src, ee.Err, c.cause)
		}
	}
}

func TestGrammarEvaluate(t *testing.T) {
	if r, err := multicalc.Basic.Evaluate(""); err != nil || r != "0" {
		t.Errorf("basic blank gave %q, %v", r, err)
	}
	if r, err := multicalc.Scientific.Evaluate(""); err != nil || r != "" {
		t.Errorf("scientific blank gave %q, %v", r, err)
	}
	if _, err := multicalc.Basic.Evaluate("sqrt(4)"); err == nil {
		t.Error("basic grammar resolved sqrt")
	}
	if r, err := multicalc.Scientific.Evaluate("sqrt(4)"); err != nil || r != "2" {
		t.Errorf("scientific sqrt(4) gave %q, %v", r, err)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		src, norm, filter string
	}{
		{"1 + 2", "1+2", "1+2"},
		{"3×4÷2", "3*4/2", "3*4/2"},
		{"5−3", "5-3", "5-3"},
		{"５−３", "５-３", "-"},
		{"2²", "2²", "2"},
		{"2¹+1", "2¹+1", "2+1"},
		{"\t7 *\n8", "7*8", "7*8"},
		{"2+a", "2+a", "2+"},
		{"abc", "abc", ""},
		{"(1, 2)", "(1,2)", "(12)"},
		{"10%", "10%", "10%"},
	}
	for _, c := range cases {
		if got := multicalc.Normalize(c.src); got != c.norm {
			t.Errorf("Normalize(%q): want %q, got %q", c.src, c.norm, got)
		}
		if got := multicalc.Filter(c.src); got != c.filter {
			t.Errorf("Filter(%q): want %q, got %q", c.src, c.filter, got)
		}
	}
}

func TestSymbols(t *testing.T) {
	want := []string{"abs", "cos", "e", "log", "log10", "pi", "sin", "sqrt", "tan"}
	got := multicalc.Symbols()
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("symbols: want %q, got %q", want, got)
	}
}
