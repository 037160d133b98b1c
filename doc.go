// Package evalexpr evaluates arithmetic expressions written as text.
//
// An expression is built from decimal numbers, the binary operators + - * /
// and ^, unary + and -, and parentheses. Multiplication and division bind
// tighter than addition and subtraction, and exponentiation binds tightest
// of all. Exponentiation groups right to left, so "2^3^2" is "2^(3^2)", and
// everything else groups left to right, so "1-2-3" is "(1-2)-3". A unary
// operator applies to the exponentiation that follows it: "-2^2" is
// "-(2^2)".
//
// Values are big.Float numbers computed to a configurable precision, 64 bits
// by default. Division by zero and overflow are errors rather than
// infinities, and so are fractional powers of negative numbers.
//
// Evaluate is the simplest entry point. Parse and Context separate parsing
// from evaluation when the same expression is evaluated more than once or the
// parse tree itself is of interest.
package evalexpr
