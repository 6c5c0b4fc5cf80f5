package shamir

import (
	"math/big"
	"math/rand"

	"github.com/Laisky/errors/v2"
)

// Poly integer polynomial, Poly[i] is the coefficient of x^i.
//
// Poly[0] is the secret.
type Poly []*big.Int

// NewRandomPoly generate polynomial of degree with constant term secret,
// other coefficients are drawn from [0, limit).
//
// the leading coefficient is never zero.
func NewRandomPoly(r *rand.Rand, secret *big.Int, degree int, limit *big.Int) (Poly, error) {
	if degree < 0 {
		return nil, errors.Errorf("degree should not be negative, got %d", degree)
	}
	if degree > 0 && limit.Cmp(big.NewInt(2)) < 0 {
		return nil, errors.Errorf("limit should be at least 2, got %s", limit.String())
	}

	p := make(Poly, degree+1)
	p[0] = new(big.Int).Set(secret)
	for i := 1; i <= degree; i++ {
		p[i] = new(big.Int).Rand(r, limit)
	}
	if degree > 0 && p[degree].Sign() == 0 {
		p[degree].SetInt64(1)
	}

	return p, nil
}

// Degree of polynomial
func (p Poly) Degree() int {
	return len(p) - 1
}

// Eval calculate P(x) by Horner's method
func (p Poly) Eval(x int64) *big.Int {
	var (
		y  = new(big.Int)
		bx = big.NewInt(x)
	)
	for i := len(p) - 1; i >= 0; i-- {
		y.Mul(y, bx)
		y.Add(y, p[i])
	}

	return y
}

// Shares sample the polynomial at every x in xs, in the same order
func (p Poly) Shares(xs ...int64) []Point {
	points := make([]Point, 0, len(xs))
	for _, x := range xs {
		points = append(points, Point{X: x, Y: p.Eval(x)})
	}

	return points
}
