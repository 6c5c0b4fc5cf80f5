package cmd

import (
	"io"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/go-sss/crypto/threshold/shamir"
	"github.com/Laisky/go-sss/log"
	"github.com/Laisky/go-sss/radix"
	"github.com/Laisky/go-sss/testcase"
)

type splitArgs struct {
	Secret string
	N, K   int
	// Base 0 means a random base for every root
	Base   int
	Bits   uint
	Seed   int64
	Output string
}

var splitArg splitArgs

func init() {
	rootCmd.AddCommand(splitCmd)
	splitCmd.Flags().StringVarP(&splitArg.Secret, "secret", "s", "", "secret in decimal, should not be negative")
	splitCmd.Flags().IntVarP(&splitArg.N, "total", "n", 0, "how many roots to generate")
	splitCmd.Flags().IntVarP(&splitArg.K, "threshold", "k", 0, "roots required to recover secret")
	splitCmd.Flags().IntVarP(&splitArg.Base, "base", "b", 10, "base of encoded values, 0 means random in [2, 36]")
	splitCmd.Flags().UintVar(&splitArg.Bits, "bits", 64, "bit length of random coefficients")
	splitCmd.Flags().Int64Var(&splitArg.Seed, "seed", 0, "random seed, 0 means current time")
	splitCmd.Flags().StringVarP(&splitArg.Output, "output", "o", "", "output file, default is stdout")
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "generate a test case whose secret is known",
	Long: `Generate a test case document by sampling a random integer
polynomial with the given constant term at x = 1..n.

    gsss split --secret 42 -n 6 -k 3 --base 0 -o case.json`,
	Args: NoExtraArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := splitArg.check(); err != nil {
			return errors.Wrap(err, "command args invalid")
		}

		if splitArg.Output == "" {
			return runSplit(cmd.OutOrStdout(), splitArg)
		}

		fp, err := os.OpenFile(splitArg.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return errors.Wrapf(err, "open %q", splitArg.Output)
		}
		defer fp.Close() // nolint: errcheck

		return runSplit(fp, splitArg)
	},
}

// check validate args and parse the secret
func (a splitArgs) check() (*big.Int, error) {
	switch {
	case a.K < 1:
		return nil, errors.Errorf("threshold should be at least 1, got %d", a.K)
	case a.N < a.K:
		return nil, errors.Errorf("total %d should not be less than threshold %d", a.N, a.K)
	case a.Base != 0 && (a.Base < radix.MinBase || a.Base > radix.MaxBase):
		return nil, errors.Errorf("base should be 0 or in [%d, %d], got %d", radix.MinBase, radix.MaxBase, a.Base)
	case a.Bits < 1:
		return nil, errors.Errorf("bits should be at least 1")
	}

	secret, ok := new(big.Int).SetString(a.Secret, 10)
	if !ok || secret.Sign() < 0 {
		return nil, errors.Errorf("secret should be a non-negative decimal integer, got %q", a.Secret)
	}

	return secret, nil
}

func runSplit(w io.Writer, arg splitArgs) error {
	secret, err := arg.check()
	if err != nil {
		return errors.Wrap(err, "command args invalid")
	}

	if arg.Seed == 0 {
		arg.Seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(arg.Seed))
	limit := new(big.Int).Lsh(big.NewInt(1), arg.Bits)
	poly, err := shamir.NewRandomPoly(r, secret, arg.K-1, limit)
	if err != nil {
		return errors.Wrap(err, "new polynomial")
	}

	xs := make([]int64, arg.N)
	for i := range xs {
		xs[i] = int64(i + 1)
	}
	points := poly.Shares(xs...)

	base := arg.Base
	if base == 0 {
		base = radix.MaxBase
	}
	c, err := testcase.Encode(arg.N, arg.K, base, points)
	if err != nil {
		return errors.Wrap(err, "encode test case")
	}
	if arg.Base == 0 {
		for i := range c.Roots {
			c.Roots[i].Base = radix.MinBase + r.Intn(radix.MaxBase-radix.MinBase+1)
			if c.Roots[i].Value, err = radix.Encode(points[i].Y, c.Roots[i].Base); err != nil {
				return errors.Wrapf(err, "encode root x=%d", points[i].X)
			}
		}
	}

	// the document must be solvable by recover
	got, err := shamir.Reconstruct(points, arg.K)
	if err != nil {
		return errors.Wrap(err, "verify shares")
	}
	if got.Cmp(secret) != 0 {
		return errors.Errorf("verify shares: expect %s, got %s", secret.String(), got.String())
	}

	data, err := c.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal test case")
	}
	if _, err = w.Write(data); err != nil {
		return errors.Wrap(err, "write test case")
	}

	log.Shared.Info("generated test case",
		zap.Int("n", arg.N),
		zap.Int("k", arg.K),
		zap.Int64("seed", arg.Seed))
	return nil
}
