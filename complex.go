package qtable

import (
	"encoding/binary"
	"strings"
)

/*
Complex is an exact algebraic complex number whose real and imaginary parts
are quadratic surds. It is an immutable value type: every operation returns
a new, reduced Complex, and equality is exact structural equality of the
reduced parts.
*/
type Complex struct {
	re Surd
	im Surd
}

// NewComplex pairs two surds into a complex value.
func NewComplex(re, im Surd) Complex {
	return Complex{re: re, im: im}
}

// FromInt returns n + 0i.
func FromInt(n int64) Complex {
	return Complex{re: Int(n), im: Int(0)}
}

// FromInts returns re + im·i.
func FromInts(re, im int64) Complex {
	return Complex{re: Int(re), im: Int(im)}
}

// FromRational returns num/den + 0i.
func FromRational(num, den int64) (Complex, error) {
	re, err := Rational(num, den)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: Int(0)}, nil
}

// ZeroValue is the additive identity.
func ZeroValue() Complex { return FromInt(0) }

// OneValue is the multiplicative identity.
func OneValue() Complex { return FromInt(1) }

// InvSqrt2Value is 1/√2, held in reduced form as √2/2.
func InvSqrt2Value() Complex {
	return Complex{re: Surd{b: 1, r: 2, d: 2}, im: Int(0)}
}

// Real and Imag return the reduced components.
func (c Complex) Real() Surd { return c.re }
func (c Complex) Imag() Surd { return c.im }

// Add is componentwise. It fails when a component sum needs two radicals or
// a coefficient overflows.
func (c Complex) Add(o Complex) (Complex, error) {
	re, err := c.re.Add(o.re)
	if err != nil {
		return Complex{}, err
	}
	im, err := c.im.Add(o.im)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: im}, nil
}

func (c Complex) Sub(o Complex) (Complex, error) {
	return c.Add(o.Neg())
}

func (c Complex) Neg() Complex {
	return Complex{re: c.re.Neg(), im: c.im.Neg()}
}

/*
Mul returns c · o = (cr·or − ci·oi) + (cr·oi + ci·or)i. It fails with
ErrUnrepresentableRadicand when a partial product or sum would need two
distinct radicals.
*/
func (c Complex) Mul(o Complex) (Complex, error) {
	rr, err := c.re.Mul(o.re)
	if err != nil {
		return Complex{}, err
	}
	ii, err := c.im.Mul(o.im)
	if err != nil {
		return Complex{}, err
	}
	ri, err := c.re.Mul(o.im)
	if err != nil {
		return Complex{}, err
	}
	ir, err := c.im.Mul(o.re)
	if err != nil {
		return Complex{}, err
	}

	re, err := rr.Sub(ii)
	if err != nil {
		return Complex{}, err
	}
	im, err := ri.Add(ir)
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: im}, nil
}

// MulAdd returns c·o + addend.
func (c Complex) MulAdd(o, addend Complex) (Complex, error) {
	p, err := c.Mul(o)
	if err != nil {
		return Complex{}, err
	}
	return p.Add(addend)
}

// Equal is exact: no tolerance is ever applied.
func (c Complex) Equal(o Complex) bool {
	return c.re.Equal(o.re) && c.im.Equal(o.im)
}

func (c Complex) IsZero() bool {
	return c.Equal(ZeroValue())
}

func (c Complex) IsOne() bool {
	return c.Equal(OneValue())
}

// Compare orders values lexicographically by (real, imaginary) using exact
// surd comparison. It returns -1, 0 or +1.
func (c Complex) Compare(o Complex) int {
	if cmp := c.re.Cmp(o.re); cmp != 0 {
		return cmp
	}
	return c.im.Cmp(o.im)
}

// CanonicalKey is the reduced integer form of a Complex:
// (a, d, sign(b), |b|, r) for the real part followed by the imaginary part.
type CanonicalKey [10]int64

// Key returns the canonical key. Values equal after reduction share a key no
// matter which arithmetic produced them.
func (c Complex) Key() CanonicalKey {
	var k CanonicalKey
	for i, s := range [2]Surd{c.re, c.im} {
		a, b, r, d := s.Parts()
		k[i*5+0] = a
		k[i*5+1] = d
		k[i*5+2] = int64(sign64(b))
		k[i*5+3] = abs64(b)
		k[i*5+4] = r
	}
	return k
}

// Bytes is the fixed-width little-endian encoding of Key, the input to HashFunc.
func (c Complex) Bytes() []byte {
	key := c.Key()
	buf := make([]byte, 0, len(key)*8)
	for _, v := range key {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return buf
}

// Complex128 approximates c for display.
func (c Complex) Complex128() complex128 {
	return complex(c.re.Float64(), c.im.Float64())
}

// String formats c as "<real>+<imag>i".
func (c Complex) String() string {
	return c.re.String() + "+" + c.im.String() + "i"
}

/*
ParseComplex reads the "<real>+<imag>i" form written by String. Exactly one
'+' may appear outside parentheses; a negative imaginary part is written
"3+-4i".
*/
func ParseComplex(text string) (Complex, error) {
	in := strings.TrimSpace(text)
	if !strings.HasSuffix(in, "i") {
		return Complex{}, &ParseError{Input: text, Reason: "missing trailing 'i'"}
	}
	in = in[:len(in)-1]

	split, depth := -1, 0
	for i := 0; i < len(in); i++ {
		switch in[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return Complex{}, &ParseError{Input: text, Reason: "unbalanced parentheses"}
			}
		case '+':
			if depth > 0 {
				continue
			}
			if split >= 0 {
				return Complex{}, &ParseError{Input: text, Reason: "more than one '+' between parts"}
			}
			split = i
		}
	}
	if depth != 0 {
		return Complex{}, &ParseError{Input: text, Reason: "unbalanced parentheses"}
	}
	if split < 0 {
		return Complex{}, &ParseError{Input: text, Reason: "missing '+' between parts"}
	}

	re, err := ParseSurd(in[:split])
	if err != nil {
		return Complex{}, err
	}
	im, err := ParseSurd(in[split+1:])
	if err != nil {
		return Complex{}, err
	}
	return Complex{re: re, im: im}, nil
}

// MustParseComplex is ParseComplex for literals known to be valid.
func MustParseComplex(text string) Complex {
	c, err := ParseComplex(text)
	if err != nil {
		panic(err)
	}
	return c
}
