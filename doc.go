// Package multicalc implements the expression evaluator behind a small
// calculator.
//
// There are two grammars. Basic expressions use digits, ".", the operators
// "+ - * / // % **", and parentheses; nothing else is accepted, not even
// identifiers. Scientific expressions add a closed table of names: sin, cos,
// tan, log (natural), log10, sqrt, abs, and the constants pi and e. Parsing
// produces a tree which is evaluated on big.Float values at float64
// precision, so no input can ever do anything but arithmetic.
//
// Results are canonicalized: "6/3" is "2", not "2.0", and "7/2" is "3.5".
//
// Juxtaposition is never multiplication. "2(3)" and "2 pi" are errors, as is
// "sin pi"; functions take bracketed argument lists, and constants do not.
package multicalc
