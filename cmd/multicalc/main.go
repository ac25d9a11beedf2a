package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/goforj/godump"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zephyrtronium/multicalc"
	"github.com/zephyrtronium/multicalc/bmi"
	"github.com/zephyrtronium/multicalc/currency"
	"github.com/zephyrtronium/multicalc/editor"
)

func main() {
	log.SetFlags(0)
	var (
		inname, mode string
		echo, dump   bool
		pow          bool
		hist         int
		prec         uint
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&mode, "mode", "basic", "calculator mode: basic or sci")
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.UintVar(&prec, "p", 0, "with -echo, also print each value computed to this many bits of precision")
	flag.BoolVar(&dump, "dump", false, "dump calculator state after each line")
	flag.BoolVar(&pow, "pow", false, "allow pow(x, y) in scientific mode")
	flag.IntVar(&hist, "history", editor.DefaultHistorySize, "number of basic mode calculations to remember")
	flag.Usage = usage
	flag.Parse()

	switch flag.Arg(0) {
	case "convert":
		convert(flag.Args()[1:])
		return
	case "bmi":
		classify(flag.Args()[1:])
		return
	}

	if hist < 0 {
		log.Fatalf("history size (%d) must not be negative", hist)
	}
	var c calc
	switch mode {
	case "basic":
		c = &basic{s: editor.NewSession(editor.HistorySize(hist)), echo: echo, prec: prec}
	case "sci", "scientific":
		var opts []multicalc.ParseOption
		if pow {
			opts = append(opts, multicalc.WithPow())
		}
		c = &sci{b: editor.NewSciBuffer(opts...), opts: opts, echo: echo, prec: prec}
	default:
		log.Fatalf("unknown mode %q", mode)
	}

	var ins []io.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	if len(flag.Args()) > 0 {
		ins = append(ins, strings.NewReader(strings.Join(flag.Args(), "\n")))
	}

	for _, in := range ins {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			c.line(line)
			if dump {
				godump.Dump(c.state())
			}
		}
		if err := sc.Err(); err != nil {
			log.Fatal(err)
		}
	}
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "usage: %s [flags] [line ...]\n", os.Args[0])
	fmt.Fprintf(w, "       %s convert AMOUNT FROM TO\n", os.Args[0])
	fmt.Fprintf(w, "       %s bmi WEIGHT_KG HEIGHT_CM\n", os.Args[0])
	fmt.Fprintln(w, "In basic mode, each line is a key label or an expression to evaluate.")
	fmt.Fprintln(w, "\"history\" lists past calculations and \"history clear\" forgets them. Keys:")
	for _, row := range editor.Keypad {
		fmt.Fprintf(w, "\t%s\n", strings.Join(row[:], "\t"))
	}
	fmt.Fprintln(w, "In sci mode, each line is a function snippet, \"=\", or an expression. Snippets:")
	fmt.Fprintf(w, "\t%s\n", strings.Join(editor.Snippets, " "))
	fmt.Fprintf(w, "Currency codes: %s\n", codeList())
	flag.PrintDefaults()
}

func codeList() string {
	var b strings.Builder
	for i, c := range currency.Codes() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(c))
	}
	return b.String()
}

// calc is a calculator mode fed one input line at a time.
type calc interface {
	line(s string)
	state() interface{}
}

type basic struct {
	s    *editor.Session
	echo bool
	prec uint
}

func (c *basic) line(s string) {
	switch s {
	case "history":
		for _, e := range c.s.History().Entries() {
			fmt.Println(e)
		}
		return
	case "history clear":
		c.s.History().Reset()
		return
	}
	cmd, err := editor.ParseKey(s)
	if err != nil {
		cmd = editor.SubmitRaw(s)
	}
	if c.echo && (cmd.String() == "Evaluate" || err != nil) {
		expr := c.s.State().Current
		if err != nil {
			expr = multicalc.Filter(s)
		}
		printTree(expr, c.prec, multicalc.Arithmetic())
	}
	if _, err := c.s.Do(cmd); err == editor.ErrNeedsClear {
		log.Println(err)
	}
	cur, last := c.s.Display()
	if last != "" {
		fmt.Printf("%s %s\n", last, cur)
		return
	}
	fmt.Println(cur)
}

func (c *basic) state() interface{} {
	return struct {
		State   editor.State
		History []string
	}{c.s.State(), c.s.History().Entries()}
}

type sci struct {
	b    *editor.SciBuffer
	opts []multicalc.ParseOption
	echo bool
	prec uint
}

func (c *sci) line(s string) {
	switch {
	case s == "=":
	case slices.Contains(editor.Snippets, s):
		c.b.Insert(s)
		fmt.Println(c.b.Expr())
		return
	default:
		c.b.Set(s)
	}
	if c.echo {
		printTree(c.b.Expr(), c.prec, c.opts...)
	}
	if r := c.b.Calculate(); c.b.HasResult() {
		fmt.Println(r.Display())
	}
}

func (c *sci) state() interface{} {
	return struct {
		Expr   string
		Result editor.Result
	}{c.b.Expr(), c.b.Result()}
}

// printTree prints the parse tree of expr. If prec is nonzero, it also prints
// the value of expr computed to prec bits.
func printTree(expr string, prec uint, opts ...multicalc.ParseOption) {
	a, err := multicalc.ParseString(expr, opts...)
	if err != nil {
		fmt.Printf("%q : %v\n", expr, err)
		return
	}
	if prec == 0 {
		fmt.Printf("%v : ", a)
		return
	}
	r, err := multicalc.EvalString(expr, prec, opts...)
	switch {
	case err != nil:
		fmt.Printf("%v = %v : ", a, err)
	case !multicalc.Finite(r):
		fmt.Printf("%v = %s (out of range) : ", a, multicalc.Format(r))
	default:
		fmt.Printf("%v = %s : ", a, multicalc.Format(r))
	}
}

func convert(args []string) {
	if len(args) != 3 {
		log.Fatalf("usage: convert AMOUNT FROM TO (codes: %s)", codeList())
	}
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		log.Fatal(err)
	}
	from, err := currency.ParseCode(args[1])
	if err != nil {
		log.Fatalf("%v (codes: %s)", err, codeList())
	}
	to, err := currency.ParseCode(args[2])
	if err != nil {
		log.Fatalf("%v (codes: %s)", err, codeList())
	}
	r, err := currency.Convert(amount, from, to)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(currency.Format(amount, from, r, to))
}

func classify(args []string) {
	if len(args) != 2 {
		log.Fatal("usage: bmi WEIGHT_KG HEIGHT_CM")
	}
	w, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		log.Fatal(err)
	}
	h, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		log.Fatal(err)
	}
	r, err := bmi.Classify(w, h)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(r)
}

// infile opens the input file, decoding UTF-16 if it starts with a byte
// order mark.
func infile(inname string, std bool) (io.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
}
