package qtable

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func mustSurd(a, b, r, d int64) Surd {
	s, err := NewSurd(a, b, r, d)
	if err != nil {
		panic(err)
	}
	return s
}

func TestNewSurd(t *testing.T) {
	Convey("Given surd components", t, func() {
		Convey("When the radicand has square factors", func() {
			s := mustSurd(2, 4, 8, 4)

			Convey("Then it should be pulled out and the result reduced", func() {
				a, b, r, d := s.Parts()
				So([]int64{a, b, r, d}, ShouldResemble, []int64{1, 4, 2, 2})
			})
		})

		Convey("When the radicand is a perfect square", func() {
			s := mustSurd(3, 2, 9, 1)

			Convey("Then the surd should collapse to a rational", func() {
				So(s.IsRational(), ShouldBeTrue)
				So(s.Equal(Int(9)), ShouldBeTrue)
				So(s.Radicand(), ShouldEqual, int64(0))
			})
		})

		Convey("When the denominator is negative", func() {
			s := mustSurd(1, 1, 2, -2)

			Convey("Then the sign should move to the numerator", func() {
				a, b, _, d := s.Parts()
				So(a, ShouldEqual, int64(-1))
				So(b, ShouldEqual, int64(-1))
				So(d, ShouldEqual, int64(2))
			})
		})

		Convey("When the denominator is zero", func() {
			_, err := NewSurd(1, 1, 2, 0)

			Convey("Then it should fail", func() {
				So(errors.Is(err, ErrZeroDenominator), ShouldBeTrue)
			})
		})

		Convey("When the radicand is negative", func() {
			_, err := Sqrt(-2)

			Convey("Then it should report an unrepresentable radicand", func() {
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)
			})
		})

		Convey("Then the zero value should equal the reduced zero", func() {
			So(Surd{}.Equal(Int(0)), ShouldBeTrue)
			So(Surd{}.String(), ShouldEqual, "0")
		})
	})
}

func TestSurdArithmetic(t *testing.T) {
	Convey("Given some surds", t, func() {
		sqrt2 := mustSurd(0, 1, 2, 1)
		sqrt3 := mustSurd(0, 1, 3, 1)
		sqrt6 := mustSurd(0, 1, 6, 1)

		Convey("When multiplying √2 by itself", func() {
			p, err := sqrt2.Mul(sqrt2)

			Convey("Then the radical should vanish", func() {
				So(err, ShouldBeNil)
				So(p.Equal(Int(2)), ShouldBeTrue)
			})
		})

		Convey("When multiplying √2 by √3", func() {
			p, err := sqrt2.Mul(sqrt3)

			Convey("Then the radicands should combine", func() {
				So(err, ShouldBeNil)
				So(p.Equal(sqrt6), ShouldBeTrue)
			})
		})

		Convey("When multiplying √6 by √3", func() {
			p, err := sqrt6.Mul(sqrt3)

			Convey("Then the square factor should be extracted", func() {
				So(err, ShouldBeNil)
				So(p.Equal(mustSurd(0, 3, 2, 1)), ShouldBeTrue)
			})
		})

		Convey("When multiplying (1+√2) by (1+√3)", func() {
			_, err := mustSurd(1, 1, 2, 1).Mul(mustSurd(1, 1, 3, 1))

			Convey("Then the product should be unrepresentable", func() {
				var re *RadicandError
				So(errors.As(err, &re), ShouldBeTrue)
				So(re.Radicands, ShouldResemble, []int64{2, 3})
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)
			})
		})

		Convey("When adding surds that share a radicand", func() {
			s, err := mustSurd(1, 1, 2, 2).Add(mustSurd(1, -1, 2, 2))

			Convey("Then the radicals should cancel", func() {
				So(err, ShouldBeNil)
				So(s.Equal(Int(1)), ShouldBeTrue)
			})
		})

		Convey("When adding surds with different radicands", func() {
			_, err := sqrt2.Add(sqrt3)

			Convey("Then the sum should be unrepresentable", func() {
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)
			})
		})

		Convey("When subtracting a surd from itself", func() {
			s, err := sqrt6.Sub(sqrt6)

			Convey("Then the result should be zero", func() {
				So(err, ShouldBeNil)
				So(s.IsZero(), ShouldBeTrue)
			})
		})
	})
}

func TestSurdCmp(t *testing.T) {
	Convey("Given surds to order", t, func() {
		sqrt2 := mustSurd(0, 1, 2, 1)
		sqrt3 := mustSurd(0, 1, 3, 1)
		threeHalves, _ := Rational(3, 2)

		Convey("Then rationals and radicals should compare exactly", func() {
			So(sqrt2.Cmp(threeHalves), ShouldEqual, -1)
			So(threeHalves.Cmp(sqrt2), ShouldEqual, 1)
			So(sqrt2.Cmp(sqrt2), ShouldEqual, 0)
		})

		Convey("Then different radicands should compare exactly", func() {
			So(sqrt2.Cmp(sqrt3), ShouldEqual, -1)
			So(sqrt3.Cmp(sqrt2), ShouldEqual, 1)
			So(mustSurd(3, -1, 2, 1).Cmp(sqrt3), ShouldEqual, -1)
			So(sqrt2.Neg().Cmp(sqrt3.Neg()), ShouldEqual, 1)
			So(sqrt2.Neg().Cmp(sqrt3), ShouldEqual, -1)
		})

		Convey("Then the sign should be exact", func() {
			So(mustSurd(-1, 1, 2, 1).Sign(), ShouldEqual, 1)
			So(mustSurd(-2, 1, 2, 1).Sign(), ShouldEqual, -1)
			So(Int(0).Sign(), ShouldEqual, 0)
		})
	})
}

func TestSurdText(t *testing.T) {
	Convey("Given textual surds", t, func() {
		Convey("When formatting and parsing", func() {
			for _, text := range []string{"0", "-7", "3/4", "(1+4√2)/2", "(-1+-3√5)", "(0+1√2)/2"} {
				s, err := ParseSurd(text)
				So(err, ShouldBeNil)
				So(s.String(), ShouldEqual, text)
			}
		})

		Convey("When the radical is spelled sqrt", func() {
			s, err := ParseSurd("(0+1sqrt2)/2")

			Convey("Then it should parse like √", func() {
				So(err, ShouldBeNil)
				So(s.Equal(InvSqrt2Value().Real()), ShouldBeTrue)
			})
		})

		Convey("When the text is malformed", func() {
			for _, text := range []string{"", "abc", "(1+1√2", "(3)", "1/0", "(1+1√2)x", "(+1√2)"} {
				_, err := ParseSurd(text)
				So(errors.Is(err, ErrParse), ShouldBeTrue)
			}
		})
	})
}

func TestSurdLimits(t *testing.T) {
	Convey("Given values at the edge of int64", t, func() {
		Convey("When the radicand is a huge prime", func() {
			_, err := ParseSurd("(0+1√9223372036854775783)")

			Convey("Then parsing should fail without hanging", func() {
				So(errors.Is(err, ErrParse), ShouldBeTrue)
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)

				var re *RadicandError
				So(errors.As(err, &re), ShouldBeTrue)
				So(re.Op, ShouldEqual, "root")
			})
		})

		Convey("When the radicand is just past the bound", func() {
			_, err := Sqrt(MaxRadicand + 1)
			s, squareErr := Sqrt(4 * MaxRadicand)

			Convey("Then only the square-free part should count", func() {
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)
				So(squareErr, ShouldBeNil)
				So(s.IsRational(), ShouldBeTrue)
				So(s.Equal(Int(2048)), ShouldBeTrue)
			})
		})

		Convey("When radicands combine past the bound", func() {
			big1, _ := Sqrt(1048573)
			big2, _ := Sqrt(1048571)
			_, err := big1.Mul(big2)

			Convey("Then the product should be unrepresentable", func() {
				So(errors.Is(err, ErrUnrepresentableRadicand), ShouldBeTrue)
			})
		})

		Convey("When a sum overflows", func() {
			_, err := Int(math.MaxInt64).Add(Int(1))

			Convey("Then it should report ErrCoefficientOverflow", func() {
				So(errors.Is(err, ErrCoefficientOverflow), ShouldBeTrue)

				var oe *OverflowError
				So(errors.As(err, &oe), ShouldBeTrue)
				So(oe.Op, ShouldEqual, "+")
			})
		})

		Convey("When a product overflows", func() {
			_, err := Int(math.MaxInt64).Mul(Int(2))
			_, rootErr := mustSurd(0, math.MaxInt64, 2, 1).Mul(mustSurd(0, 2, 2, 1))

			Convey("Then it should report ErrCoefficientOverflow", func() {
				So(errors.Is(err, ErrCoefficientOverflow), ShouldBeTrue)
				So(errors.Is(rootErr, ErrCoefficientOverflow), ShouldBeTrue)
			})
		})

		Convey("When math.MinInt64 is parsed", func() {
			_, err := ParseSurd("-9223372036854775808")

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, ErrParse), ShouldBeTrue)
				So(errors.Is(err, ErrCoefficientOverflow), ShouldBeTrue)
			})
		})

		Convey("When comparing values whose cross products leave int64", func() {
			x := mustSurd(math.MaxInt64-1, 0, 0, math.MaxInt64)
			y := mustSurd(math.MaxInt64-2, 0, 0, math.MaxInt64-1)
			z := mustSurd(0, math.MaxInt64, 2, 3)

			Convey("Then the order should still be exact", func() {
				So(x.Cmp(y), ShouldEqual, 1)
				So(y.Cmp(x), ShouldEqual, -1)
				So(z.Cmp(Int(math.MaxInt64)), ShouldEqual, -1)
				So(z.Neg().Sign(), ShouldEqual, -1)
			})
		})
	})
}
