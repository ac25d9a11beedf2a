package multicalc

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	arithopt struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// funcs is the set of names the parser resolves. Any other identifier is
	// an error.
	funcs map[string]Func
	// own indicates that funcs is a private copy which options may modify.
	own bool
	// noexp disallows exponent markers in number literals.
	noexp bool
	// depth is the number of terms currently being parsed.
	depth int
}

// set adds or removes a function, copying the shared table first.
func (p *parsectx) set(name string, fn Func) {
	if !p.own {
		m := make(map[string]Func, len(p.funcs)+1)
		for k, v := range p.funcs {
			m[k] = v
		}
		p.funcs = m
		p.own = true
	}
	if fn == nil {
		delete(p.funcs, name)
		return
	}
	p.funcs[name] = fn
}

// WithPow enables the two-argument pow(x, y) function, equivalent to x ** y.
func WithPow() ParseOption {
	return &funcopt{"pow", newDyadic(pow)}
}

func (o *funcopt) parseOption(p parsectx) parsectx {
	p.set(o.name, o.fn)
	return p
}

// Arithmetic restricts parsing to numbers, operators, and parentheses. No
// identifiers resolve, and number literals may not use exponent markers.
// Options applied after Arithmetic may add functions back.
func Arithmetic() ParseOption {
	return arithopt{}
}

func (arithopt) parseOption(p parsectx) parsectx {
	p.funcs = nil
	p.own = false
	p.noexp = true
	return p
}
