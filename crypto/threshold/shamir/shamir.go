// Package shamir recovers the secret of a Shamir-style sharing over the integers.
//
// Every share is a point (x, y) on an unknown polynomial P of degree k-1
// with integer coefficients, and the secret is P(0).
// Any k shares with distinct x determine P, so P(0) can be obtained by
// Lagrange interpolation evaluated at zero:
//
//	P(0) = Σ y_i · L_i(0),  L_i(0) = Π_{j≠i} (-x_j) / (x_i - x_j)
//
// Arithmetic is done with math/big and every basis value must be an exact
// integer, so the result is either exactly P(0) or an error.
// There is no finite field involved, this package must not be used to
// protect real secrets.
package shamir

import (
	"math/big"

	"github.com/Laisky/errors/v2"
)

var (
	// ErrInvalidThreshold threshold k should be at least 1
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInsufficientPoints fewer points than threshold
	ErrInsufficientPoints = errors.New("insufficient points")
	// ErrDuplicateXCoordinate two selected points share the same x
	ErrDuplicateXCoordinate = errors.New("duplicate x coordinate")
	// ErrNonIntegerBasis a lagrange basis value at zero is not an integer
	ErrNonIntegerBasis = errors.New("non-integer lagrange basis")
)

// Point one share of the polynomial
type Point struct {
	X int64
	Y *big.Int
}

// Reconstruct calculate the secret P(0) from the first k points.
//
// points are used in the given order, the rest after the first k are ignored.
// The points are neither sorted nor deduplicated.
func Reconstruct(points []Point, k int) (*big.Int, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrInvalidThreshold, "got %d", k)
	}
	if len(points) < k {
		return nil, errors.Wrapf(ErrInsufficientPoints, "need %d, got %d", k, len(points))
	}

	selected := points[:k]
	xs := make([]int64, k)
	for i, p := range selected {
		if p.Y == nil {
			return nil, errors.Errorf("point %d (x=%d) has no y", i, p.X)
		}
		xs[i] = p.X
	}

	var (
		secret = new(big.Int)
		term   = new(big.Int)
	)
	for i, p := range selected {
		basis, err := BasisAtZero(xs, i)
		if err != nil {
			return nil, err
		}

		secret.Add(secret, term.Mul(p.Y, basis))
	}

	return secret, nil
}

// BasisAtZero calculate lagrange basis value L_i(0) for xs.
//
// returns ErrDuplicateXCoordinate if some x_j equals x_i,
// ErrNonIntegerBasis if L_i(0) is not an integer.
func BasisAtZero(xs []int64, i int) (*big.Int, error) {
	if i < 0 || i >= len(xs) {
		return nil, errors.Errorf("index %d out of range [0, %d)", i, len(xs))
	}

	var (
		num = big.NewInt(1)
		den = big.NewInt(1)
		xi  = big.NewInt(xs[i])
		xj  = new(big.Int)
		d   = new(big.Int)
	)
	for j, x := range xs {
		if j == i {
			continue
		}

		xj.SetInt64(x)
		d.Sub(xi, xj)
		if d.Sign() == 0 {
			return nil, errors.Wrapf(ErrDuplicateXCoordinate, "x=%d at index %d and %d", x, i, j)
		}

		num.Mul(num, xj.Neg(xj))
		den.Mul(den, d)
	}

	// Quo/Rem truncate toward zero, sign of the remainder does not matter here
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if r.Sign() != 0 {
		return nil, errors.Wrapf(ErrNonIntegerBasis, "index %d: %s / %s", i, num.String(), den.String())
	}

	return q, nil
}
