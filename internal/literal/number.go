package literal

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Number is an arbitrary-precision decimal. It keeps the digits it was
// built from, so 1.50 formats as 1.50 rather than 1.5.
//
// The zero Number is 0. Numbers are immutable once constructed.
type Number struct {
	d *apd.Decimal
}

func (Number) literalValue() {}

// Int returns a Number for an integer.
func Int(n int64) Number {
	return Number{d: apd.New(n, 0)}
}

// Uint returns a Number for an unsigned integer.
func Uint(n uint64) Number {
	num, _ := ParseNumber(strconv.FormatUint(n, 10))
	return num
}

// Float returns a Number for a float64, using the shortest decimal that
// round-trips. NaN and infinities are rejected.
func Float(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, &FormatError{Err: ErrInvalidFormat, Detail: fmt.Sprintf("non-finite number %v", f)}
	}
	d, _, err := apd.NewFromString(strconv.FormatFloat(f, 'g', -1, 64))
	if err != nil {
		return Number{}, &FormatError{Err: ErrInvalidFormat, Detail: err.Error()}
	}
	return Number{d: d}, nil
}

// ParseNumber parses decimal text such as "42", "-0.25" or "1e3".
// NaN and infinities are rejected.
func ParseNumber(s string) (Number, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Number{}, &FormatError{Err: ErrInvalidFormat, Detail: fmt.Sprintf("invalid number %q", s)}
	}
	if d.Form != apd.Finite {
		return Number{}, &FormatError{Err: ErrInvalidFormat, Detail: fmt.Sprintf("non-finite number %q", s)}
	}
	return Number{d: d}, nil
}

// MustParseNumber is ParseNumber for constants. It panics on bad input.
func MustParseNumber(s string) Number {
	n, err := ParseNumber(s)
	if err != nil {
		panic(err)
	}
	return n
}

// FromDecimal copies d into a Number. Non-finite decimals are rejected.
func FromDecimal(d *apd.Decimal) (Number, error) {
	if d == nil {
		return Number{}, nil
	}
	if d.Form != apd.Finite {
		return Number{}, &FormatError{Err: ErrInvalidFormat, Detail: fmt.Sprintf("non-finite number %s", d.String())}
	}
	return Number{d: new(apd.Decimal).Set(d)}, nil
}

// Decimal returns a copy of the underlying decimal.
func (n Number) Decimal() *apd.Decimal {
	if n.d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(n.d)
}

// IsInteger reports whether the value has no fractional part.
func (n Number) IsInteger() bool {
	if n.d == nil {
		return true
	}
	var reduced apd.Decimal
	reduced.Reduce(n.d)
	return reduced.Exponent >= 0
}

// String returns the same text as FormatNumber.
func (n Number) String() string {
	return FormatNumber(n)
}
