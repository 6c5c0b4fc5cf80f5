package sss

import (
	"math/big"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/go-sss/crypto/threshold/shamir"
	"github.com/Laisky/go-sss/radix"
)

// Point one decoded share
type Point = shamir.Point

// Share one encoded share, Value is y written in Base
type Share struct {
	X     int64
	Base  int
	Value string
}

// Decode parse encoded as an integer in base
func Decode(encoded string, base int) (*big.Int, error) {
	return radix.Decode(encoded, base)
}

// Reconstruct recover the secret from the first k points
func Reconstruct(points []Point, k int) (*big.Int, error) {
	return shamir.Reconstruct(points, k)
}

// Recover decode every share and recover the secret from the first k of them
func Recover(shares []Share, k int) (*big.Int, error) {
	points := make([]Point, 0, len(shares))
	for _, s := range shares {
		y, err := radix.Decode(s.Value, s.Base)
		if err != nil {
			return nil, errors.Wrapf(err, "decode share x=%d", s.X)
		}

		points = append(points, Point{X: s.X, Y: y})
	}

	return shamir.Reconstruct(points, k)
}
