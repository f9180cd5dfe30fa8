package qtable

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// MaxRadicand bounds the square-free radicand a Surd may carry. Gate
// amplitudes only ever need √2; larger radicands are reported as
// ErrUnrepresentableRadicand.
const MaxRadicand = 1 << 20

/*
Surd is an exact quadratic surd (a + b·√r) / d.

Surds are always held in reduced form: d is positive, r is square-free and
at least 2 whenever b is non-zero, a purely rational surd has b = r = 0, and
gcd(a, b, d) is 1. Reduced form is unique, so two surds are equal exactly
when their fields are equal.
*/
type Surd struct {
	a int64
	b int64
	r int64
	d int64
}

// NewSurd builds and reduces (a + b·√r) / d.
func NewSurd(a, b, r, d int64) (Surd, error) {
	if d == 0 {
		return Surd{}, ErrZeroDenominator
	}
	if r < 0 && b != 0 {
		return Surd{}, &RadicandError{Op: "root", Radicands: []int64{r}}
	}
	return reduceSurd(a, b, r, d)
}

// Int returns the surd n. n must not be math.MinInt64, which has no negation.
func Int(n int64) Surd {
	return Surd{a: n, d: 1}
}

// Rational returns num/den in lowest terms.
func Rational(num, den int64) (Surd, error) {
	return NewSurd(num, 0, 0, den)
}

// Sqrt returns √n for a non-negative n.
func Sqrt(n int64) (Surd, error) {
	return NewSurd(0, 1, n, 1)
}

func reduceSurd(a, b, r, d int64) (Surd, error) {
	var c arith
	if d < 0 {
		a, b, d = c.neg(a), c.neg(b), c.neg(d)
	}

	if b == 0 || r == 0 {
		b, r = 0, 0
	} else {
		// Products of two bounded radicands are at most MaxRadicand², which
		// keeps trial division short.
		if r > MaxRadicand*MaxRadicand {
			return Surd{}, &RadicandError{Op: "root", Radicands: []int64{r}}
		}
		k, rest := splitSquare(r)
		b = c.mul(b, k)
		r = rest
		if r == 1 {
			a = c.add(a, b)
			b, r = 0, 0
		}
		if r > MaxRadicand {
			return Surd{}, &RadicandError{Op: "root", Radicands: []int64{r}}
		}
	}

	// MinInt64 is kept out of reduced form so Neg stays exact.
	if a == math.MinInt64 || b == math.MinInt64 {
		c.fail("-", 0, math.MinInt64)
	}
	if c.err != nil {
		return Surd{}, c.err
	}

	if g := gcd(gcd(abs64(a), abs64(b)), d); g > 1 {
		a, b, d = a/g, b/g, d/g
	}

	return Surd{a: a, b: b, r: r, d: d}, nil
}

// Parts returns the reduced (a, b, r, d) of (a + b·√r) / d.
func (s Surd) Parts() (a, b, r, d int64) {
	return s.a, s.b, s.r, s.denom()
}

// denom treats the zero Surd as 0/1.
func (s Surd) denom() int64 {
	if s.d == 0 {
		return 1
	}
	return s.d
}

// IsRational reports whether the radical part vanished.
func (s Surd) IsRational() bool {
	return s.b == 0
}

// Radicand is the square-free radicand, or 0 for a rational surd.
func (s Surd) Radicand() int64 {
	return s.r
}

func (s Surd) Equal(o Surd) bool {
	return s.a == o.a && s.b == o.b && s.r == o.r && s.denom() == o.denom()
}

func (s Surd) IsZero() bool {
	return s.a == 0 && s.b == 0
}

func (s Surd) Neg() Surd {
	return Surd{a: -s.a, b: -s.b, r: s.r, d: s.denom()}
}

// Add returns s + o. The sum only fits a single surd when both operands share
// a radicand or at least one of them is rational.
func (s Surd) Add(o Surd) (Surd, error) {
	r, err := sharedRadicand("add", s, o)
	if err != nil {
		return Surd{}, err
	}

	var c arith
	sd, od := s.denom(), o.denom()
	a := c.add(c.mul(s.a, od), c.mul(o.a, sd))
	b := c.add(c.mul(s.b, od), c.mul(o.b, sd))
	d := c.mul(sd, od)
	if c.err != nil {
		return Surd{}, c.err
	}

	return reduceSurd(a, b, r, d)
}

func (s Surd) Sub(o Surd) (Surd, error) {
	return s.Add(o.Neg())
}

/*
Mul returns s · o. Radicands combine under the product, so √2·√2 = 2 and
√2·√3 = √6, but (1 + √2)(1 + √3) needs both √2 and √3 and is reported as
ErrUnrepresentableRadicand. Coefficients that leave int64 fail with
ErrCoefficientOverflow.
*/
func (s Surd) Mul(o Surd) (Surd, error) {
	var c arith
	d := c.mul(s.denom(), o.denom())

	var a, b, r int64
	switch {
	case s.b == 0 || o.b == 0:
		r = s.r
		if r == 0 {
			r = o.r
		}
		a = c.mul(s.a, o.a)
		b = c.add(c.mul(s.a, o.b), c.mul(s.b, o.a))
	case s.r == o.r:
		r = s.r
		a = c.add(c.mul(s.a, o.a), c.mul(c.mul(s.b, o.b), s.r))
		b = c.add(c.mul(s.a, o.b), c.mul(s.b, o.a))
	case s.a == 0 && o.a == 0:
		b = c.mul(s.b, o.b)
		r = c.mul(s.r, o.r)
	default:
		return Surd{}, &RadicandError{Op: "multiply", Radicands: []int64{s.r, o.r}}
	}
	if c.err != nil {
		return Surd{}, c.err
	}

	return reduceSurd(a, b, r, d)
}

// Sign returns -1, 0 or +1 according to the exact sign of s.
func (s Surd) Sign() int {
	return surdSign(big.NewInt(s.a), big.NewInt(s.b), s.r)
}

/*
Cmp compares the exact real values of s and o and returns -1, 0 or +1.
The ordering is total and agrees with Equal. Intermediate products are
taken in big.Int so no pair of surds can overflow the comparison.
*/
func (s Surd) Cmp(o Surd) int {
	// s - o = (p + q√r1 - t√r2) / (d1·d2)
	sd, od := big.NewInt(s.denom()), big.NewInt(o.denom())
	p := new(big.Int).Sub(mulBig(s.a, od), mulBig(o.a, sd))
	q := mulBig(s.b, od)
	t := mulBig(o.b, sd)

	switch {
	case o.b == 0:
		return surdSign(p, q, s.r)
	case s.b == 0:
		return surdSign(p, t.Neg(t), o.r)
	case s.r == o.r:
		return surdSign(p, q.Sub(q, t), s.r)
	}

	left := surdSign(p, q, s.r)
	right := t.Sign()
	if left != right {
		return cmpInt(left, right)
	}
	if left == 0 {
		return 0
	}

	// Same sign on both sides: compare squares.
	// (p + q√r1)² - (t√r2)² = p² + q²r1 - t²r2 + 2pq√r1
	rational := new(big.Int).Mul(p, p)
	rational.Add(rational, mulBig(s.r, new(big.Int).Mul(q, q)))
	rational.Sub(rational, mulBig(o.r, new(big.Int).Mul(t, t)))
	cross := new(big.Int).Mul(p, q)
	cross.Lsh(cross, 1)

	squares := surdSign(rational, cross, s.r)
	if left < 0 {
		return -squares
	}
	return squares
}

// Float64 approximates s. It is for display only and plays no part in equality.
func (s Surd) Float64() float64 {
	v := float64(s.a)
	if s.b != 0 {
		v += float64(s.b) * math.Sqrt(float64(s.r))
	}
	return v / float64(s.denom())
}

/*
String formats s as "n", "n/d", "(a+b√r)" or "(a+b√r)/d". ParseSurd accepts
the same forms.
*/
func (s Surd) String() string {
	var out string
	if s.b == 0 {
		out = strconv.FormatInt(s.a, 10)
	} else {
		out = fmt.Sprintf("(%d+%d√%d)", s.a, s.b, s.r)
	}
	if d := s.denom(); d != 1 {
		out += "/" + strconv.FormatInt(d, 10)
	}
	return out
}

// ParseSurd parses the forms produced by Surd.String. "sqrt" is accepted in
// place of "√".
func ParseSurd(text string) (Surd, error) {
	in := strings.TrimSpace(text)
	if in == "" {
		return Surd{}, &ParseError{Input: text, Reason: "empty surd"}
	}

	body, den := in, int64(1)
	if strings.HasPrefix(in, "(") {
		end := strings.IndexByte(in, ')')
		if end < 0 {
			return Surd{}, &ParseError{Input: text, Reason: "unclosed parenthesis"}
		}
		body = in[1:end]
		if rest := in[end+1:]; rest != "" {
			if !strings.HasPrefix(rest, "/") {
				return Surd{}, &ParseError{Input: text, Reason: "expected '/' after ')'"}
			}
			n, err := parseInt(text, rest[1:])
			if err != nil {
				return Surd{}, err
			}
			den = n
		}
	} else if i := strings.IndexByte(in, '/'); i >= 0 {
		body = in[:i]
		n, err := parseInt(text, in[i+1:])
		if err != nil {
			return Surd{}, err
		}
		den = n
	}

	if den == 0 {
		return Surd{}, &ParseError{Input: text, Reason: "zero denominator"}
	}

	body = strings.ReplaceAll(body, "sqrt", "√")
	root := strings.Index(body, "√")
	if root < 0 {
		if strings.HasPrefix(in, "(") {
			return Surd{}, &ParseError{Input: text, Reason: "parenthesised form needs a radical"}
		}
		n, err := parseInt(text, body)
		if err != nil {
			return Surd{}, err
		}
		surd, err := reduceSurd(n, 0, 0, den)
		if err != nil {
			return Surd{}, &ParseError{Input: text, Reason: err.Error(), Err: err}
		}
		return surd, nil
	}

	plus := strings.LastIndexByte(body[:root], '+')
	if plus <= 0 {
		return Surd{}, &ParseError{Input: text, Reason: "expected a+b√r"}
	}

	a, err := parseInt(text, body[:plus])
	if err != nil {
		return Surd{}, err
	}
	b, err := parseInt(text, body[plus+1:root])
	if err != nil {
		return Surd{}, err
	}
	r, err := parseInt(text, body[root+len("√"):])
	if err != nil {
		return Surd{}, err
	}

	surd, err := NewSurd(a, b, r, den)
	if err != nil {
		return Surd{}, &ParseError{Input: text, Reason: err.Error(), Err: err}
	}
	return surd, nil
}

func parseInt(input, field string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, &ParseError{Input: input, Reason: fmt.Sprintf("bad integer %q", field)}
	}
	return n, nil
}

func sharedRadicand(op string, s, o Surd) (int64, error) {
	switch {
	case s.b == 0:
		return o.r, nil
	case o.b == 0, s.r == o.r:
		return s.r, nil
	}
	return 0, &RadicandError{Op: op, Radicands: []int64{s.r, o.r}}
}

// surdSign is the sign of a + b√r for square-free r (or b == 0).
func surdSign(a, b *big.Int, r int64) int {
	sa, sb := a.Sign(), b.Sign()
	if sb == 0 || r == 0 {
		return sa
	}
	if sa == 0 || sa == sb {
		return sb
	}
	// Opposite signs: the larger magnitude wins.
	aa := new(big.Int).Mul(a, a)
	bb := mulBig(r, new(big.Int).Mul(b, b))
	switch aa.Cmp(bb) {
	case 1:
		return sa
	case -1:
		return sb
	}
	return 0
}

func mulBig(x int64, y *big.Int) *big.Int {
	return new(big.Int).Mul(big.NewInt(x), y)
}

// splitSquare writes r as k²·rest with rest square-free.
func splitSquare(r int64) (k, rest int64) {
	k, rest = 1, r
	for f := int64(2); f <= rest/f; f++ {
		for rest%(f*f) == 0 {
			rest /= f * f
			k *= f
		}
	}
	return k, rest
}

func gcd(x, y int64) int64 {
	for y != 0 {
		x, y = y, x%y
	}
	return x
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

func sign64(x int64) int {
	return cmpInt64(x, 0)
}

func cmpInt64(x, y int64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func cmpInt(x, y int) int {
	return cmpInt64(int64(x), int64(y))
}

// arith is checked int64 arithmetic that keeps the first overflow. Once err
// is set every further operation is a no-op returning 0.
type arith struct {
	err error
}

func (c *arith) fail(op string, x, y int64) {
	if c.err == nil {
		c.err = &OverflowError{Op: op, X: x, Y: y}
	}
}

func (c *arith) mul(x, y int64) int64 {
	if c.err != nil || x == 0 || y == 0 {
		return 0
	}
	p := x * y
	if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		c.fail("*", x, y)
		return 0
	}
	return p
}

func (c *arith) add(x, y int64) int64 {
	if c.err != nil {
		return 0
	}
	s := x + y
	if (x > 0 && y > 0 && s < 0) || (x < 0 && y < 0 && s >= 0) {
		c.fail("+", x, y)
		return 0
	}
	return s
}

func (c *arith) neg(x int64) int64 {
	if c.err != nil {
		return 0
	}
	if x == math.MinInt64 {
		c.fail("-", 0, x)
		return 0
	}
	return -x
}
