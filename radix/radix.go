// Package radix converts between positional numeral strings in base 2..36
// and arbitrary-precision integers.
//
// Digits are `0-9` followed by `a-z`, letters are case-insensitive:
// `a` and `A` are both 10, `z` and `Z` are both 35.
package radix

import (
	"math/big"

	"github.com/Laisky/errors/v2"
)

const (
	// MinBase smallest supported base
	MinBase = 2
	// MaxBase largest supported base
	MaxBase = 36
)

var (
	// ErrInvalidDigit character is not a digit, or not a digit of the base
	ErrInvalidDigit = errors.New("invalid digit")
	// ErrInvalidBase base out of [MinBase, MaxBase]
	ErrInvalidBase = errors.New("invalid base")
	// ErrNegative negative numbers can not be encoded
	ErrNegative = errors.New("negative value")
)

func checkBase(base int) error {
	if base < MinBase || base > MaxBase {
		return errors.Wrapf(ErrInvalidBase, "base should be in [%d, %d], got %d", MinBase, MaxBase, base)
	}

	return nil
}

// digitValue map character to its digit value, -1 means not a digit
func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// Decode parse encoded as a non-negative integer written in base.
//
// encoded is evaluated most significant digit first,
// the result is never truncated.
func Decode(encoded string, base int) (*big.Int, error) {
	if err := checkBase(base); err != nil {
		return nil, err
	}
	if encoded == "" {
		return nil, errors.Wrap(ErrInvalidDigit, "empty value")
	}

	var (
		acc = new(big.Int)
		b   = big.NewInt(int64(base))
		d   = new(big.Int)
	)
	for i := 0; i < len(encoded); i++ {
		v := digitValue(encoded[i])
		if v < 0 {
			return nil, errors.Wrapf(ErrInvalidDigit, "character %q at %d", encoded[i], i)
		}
		if v >= base {
			return nil, errors.Wrapf(ErrInvalidDigit, "digit %d at %d is not valid in base %d", v, i, base)
		}

		acc.Mul(acc, b)
		acc.Add(acc, d.SetInt64(int64(v)))
	}

	return acc, nil
}

// Encode render non-negative v in base with lowercase digits.
//
// zero is rendered as "0".
func Encode(v *big.Int, base int) (string, error) {
	if err := checkBase(base); err != nil {
		return "", err
	}
	if v.Sign() < 0 {
		return "", errors.Wrapf(ErrNegative, "got %s", v.String())
	}
	return v.Text(base), nil
}
