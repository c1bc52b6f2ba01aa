package lisp

import "fmt"

// Ratio is an exact ratio of two integers.  A Ratio is never simplified and
// its denominator may be zero.
type Ratio struct {
	Num   int64
	Denom int64
}

// NewRatio returns the ratio num/denom.
func NewRatio(num, denom int64) Ratio {
	return Ratio{Num: num, Denom: denom}
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Denom)
}
