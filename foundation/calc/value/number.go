// File: number.go
// Title: Calculator Numeric Values
// Description: Defines the integer/float number type produced by evaluation
//              and the arithmetic applied by operator nodes, including
//              int-to-float promotion and floored modulo. Integers have
//              arbitrary precision and never overflow.
// Author: msto63
// Version: v0.2.0
// Created: 2025-10-19
// Modified: 2025-10-26
//
// Change History:
// - 2025-10-19 v0.1.0: Initial implementation
// - 2025-10-26 v0.2.0: Integers backed by *big.Int, "/" always yields a float

package value

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"sync"

	mdwerror "github.com/msto63/calc/foundation/core/error"
)

// Kind tells the two number representations apart
type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

// String returns the name of the kind
func (k Kind) String() string {
	if k == KindFloat {
		return "float"
	}
	return "int"
}

// ratPool holds scratch rationals for correctly rounded integer division
var ratPool = sync.Pool{
	New: func() interface{} {
		return new(big.Rat)
	},
}

var bigZero = new(big.Int)

// Number is either an arbitrary precision integer or a float64.
// The zero value is integer 0. A Number never shares its *big.Int
// with callers, so values are immutable once built.
type Number struct {
	kind Kind
	i    *big.Int
	f    float64
}

// Int returns an integer number
func Int(v int64) Number {
	return Number{kind: KindInt, i: big.NewInt(v)}
}

// BigInt returns an integer number holding a copy of v
func BigInt(v *big.Int) Number {
	if v == nil {
		return Int(0)
	}
	return Number{kind: KindInt, i: new(big.Int).Set(v)}
}

// ParseInt parses a base 10 digit string of any length
func ParseInt(text string) (Number, bool) {
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Number{}, false
	}
	return Number{kind: KindInt, i: i}, true
}

// Float returns a floating point number
func Float(v float64) Number {
	return Number{kind: KindFloat, f: v}
}

// Kind returns the representation of n
func (n Number) Kind() Kind { return n.kind }

// IsInt reports whether n holds an integer
func (n Number) IsInt() bool { return n.kind == KindInt }

func (n Number) bigInt() *big.Int {
	if n.i == nil {
		return bigZero
	}
	return n.i
}

// BigInt returns a copy of the integer value, truncating floats toward zero.
// Non-finite floats yield 0.
func (n Number) BigInt() *big.Int {
	if n.kind == KindFloat {
		if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return new(big.Int)
		}
		i, _ := big.NewFloat(n.f).Int(nil)
		return i
	}
	return new(big.Int).Set(n.bigInt())
}

// IsInt64 reports whether n is an integer that fits into an int64
func (n Number) IsInt64() bool {
	return n.kind == KindInt && n.bigInt().IsInt64()
}

// Int64 returns n as an int64, truncating floats toward zero.
// Integers outside the int64 range are undefined; check IsInt64 first.
func (n Number) Int64() int64 {
	if n.kind == KindFloat {
		return int64(n.f)
	}
	return n.bigInt().Int64()
}

// Float64 returns n as the nearest float. Integers beyond the float range
// become ±Inf.
func (n Number) Float64() float64 {
	if n.kind == KindFloat {
		return n.f
	}
	if n.bigInt().IsInt64() {
		return float64(n.bigInt().Int64())
	}
	f, _ := new(big.Float).SetInt(n.bigInt()).Float64()
	return f
}

// IsZero reports whether n is numerically zero
func (n Number) IsZero() bool {
	if n.kind == KindFloat {
		return n.f == 0
	}
	return n.bigInt().Sign() == 0
}

// Equal reports whether both numbers have the same kind and value
func (n Number) Equal(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == KindFloat {
		return n.f == other.f
	}
	return n.bigInt().Cmp(other.bigInt()) == 0
}

// String renders integers in base 10 and floats in their shortest form.
// Integral floats keep a trailing ".0" so the kind stays visible.
func (n Number) String() string {
	if n.kind == KindInt {
		return n.bigInt().String()
	}

	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// Interface returns n for JSON encoding: int64 when it fits, *big.Int for
// larger integers (encoded as a JSON number) and float64 otherwise.
func (n Number) Interface() interface{} {
	if n.kind == KindFloat {
		return n.f
	}
	if n.bigInt().IsInt64() {
		return n.bigInt().Int64()
	}
	return n.BigInt()
}

// Apply performs the arithmetic named by symbol ("+", "-", "*", "/", "%")
func Apply(symbol string, a, b Number) (Number, error) {
	switch symbol {
	case "+":
		return Add(a, b), nil
	case "-":
		return Sub(a, b), nil
	case "*":
		return Mul(a, b), nil
	case "/":
		return Div(a, b)
	case "%":
		return Mod(a, b)
	default:
		return Number{}, mdwerror.New("unknown operator: "+symbol).
			WithCode(mdwerror.CodeInvalidExpression).
			WithOperation("value.Apply").
			WithDetail("operator", symbol)
	}
}

// Add returns a + b
func Add(a, b Number) Number {
	if a.IsInt() && b.IsInt() {
		return Number{kind: KindInt, i: new(big.Int).Add(a.bigInt(), b.bigInt())}
	}
	return Float(a.Float64() + b.Float64())
}

// Sub returns a - b
func Sub(a, b Number) Number {
	if a.IsInt() && b.IsInt() {
		return Number{kind: KindInt, i: new(big.Int).Sub(a.bigInt(), b.bigInt())}
	}
	return Float(a.Float64() - b.Float64())
}

// Mul returns a * b
func Mul(a, b Number) Number {
	if a.IsInt() && b.IsInt() {
		return Number{kind: KindInt, i: new(big.Int).Mul(a.bigInt(), b.bigInt())}
	}
	return Float(a.Float64() * b.Float64())
}

// Div returns a / b as a float. Two integers are divided exactly and
// rounded once, so large operands keep full precision.
func Div(a, b Number) (Number, error) {
	if b.IsZero() {
		return Number{}, divisionByZero("/", a)
	}

	if a.IsInt() && b.IsInt() {
		q := ratPool.Get().(*big.Rat)
		defer ratPool.Put(q)
		f, _ := q.SetFrac(a.bigInt(), b.bigInt()).Float64()
		return Float(f), nil
	}
	return Float(a.Float64() / b.Float64()), nil
}

// Mod returns the floored remainder of a / b; the result takes the sign of b
func Mod(a, b Number) (Number, error) {
	if b.IsZero() {
		return Number{}, divisionByZero("%", a)
	}

	if a.IsInt() && b.IsInt() {
		d := b.bigInt()
		r := new(big.Int).Rem(a.bigInt(), d)
		if r.Sign() != 0 && r.Sign() != d.Sign() {
			r.Add(r, d)
		}
		return Number{kind: KindInt, i: r}, nil
	}

	r := math.Mod(a.Float64(), b.Float64())
	if r != 0 && (r < 0) != (b.Float64() < 0) {
		r += b.Float64()
	}
	return Float(r), nil
}

func divisionByZero(symbol string, dividend Number) error {
	return mdwerror.New("division by zero").
		WithCode(mdwerror.CodeDivisionByZero).
		WithOperation("value.Apply").
		WithDetail("operator", symbol).
		WithDetail("dividend", dividend.String())
}
