// Package solver recovers secrets from test case files
package solver

import (
	"context"
	"math/big"

	"github.com/Laisky/errors/v2"
	zap "github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/go-sss/crypto/threshold/shamir"
	"github.com/Laisky/go-sss/log"
	"github.com/Laisky/go-sss/testcase"
)

const (
	// cases with more roots than debugSampleRoots only log
	// a sample of their decoded points
	debugSampleRoots = 64
	// debugSampleRate out of log.SampleRateDenominator
	debugSampleRate = 100
)

// Result secret recovered from one test case
type Result struct {
	// Name where the case comes from, usually the file path
	Name   string
	Case   *testcase.Case
	Secret *big.Int
}

// Solver recover secrets and report progress to logger
type Solver struct {
	logger log.Logger
}

// Option optional arguments for New
type Option func(*Solver) error

// WithLogger set logger, default is log.Shared
func WithLogger(logger log.Logger) Option {
	return func(s *Solver) error {
		if logger == nil {
			return errors.Errorf("logger should not be nil")
		}

		s.logger = logger
		return nil
	}
}

// New create new solver
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		logger: log.Shared.Named("solver"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Solve decode roots of c and recover the secret from its first k points
func (s *Solver) Solve(ctx context.Context, name string, c *testcase.Case) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger := s.logger.With(zap.String("case", name))
	logger.Info("solve test case",
		zap.Int("n", c.N),
		zap.Int("k", c.K),
		zap.Int("degree", c.Degree()))

	sample := log.SampleRateDenominator
	if len(c.Roots) > debugSampleRoots {
		sample = debugSampleRate
	}

	points := make([]shamir.Point, 0, len(c.Roots))
	for _, r := range c.Roots {
		p, err := r.Point()
		if err != nil {
			return nil, errors.Wrapf(err, "case %q", name)
		}

		logger.DebugSample(sample, "decoded point",
			zap.Int64("x", p.X),
			zap.String("y", p.Y.String()),
			zap.String("value", r.Value),
			zap.Int("base", r.Base))
		points = append(points, p)
	}

	if len(points) < c.K {
		logger.Warn("not enough points to find the secret",
			zap.Int("need", c.K),
			zap.Int("got", len(points)))
	}

	secret, err := shamir.Reconstruct(points, c.K)
	if err != nil {
		return nil, errors.Wrapf(err, "case %q", name)
	}

	logger.Info("found secret", zap.String("secret", secret.String()))
	return &Result{
		Name:   name,
		Case:   c,
		Secret: secret,
	}, nil
}

// SolveFile load test case file and solve it
func (s *Solver) SolveFile(ctx context.Context, fpath string) (*Result, error) {
	c, err := testcase.Load(fpath)
	if err != nil {
		return nil, err
	}

	return s.Solve(ctx, fpath, c)
}

// SolveFiles solve every file with at most parallel files in flight.
//
// results keep the order of files. The first error cancels the rest.
func (s *Solver) SolveFiles(ctx context.Context, files []string, parallel int) ([]*Result, error) {
	if parallel < 1 {
		return nil, errors.Errorf("parallel should be at least 1, got %d", parallel)
	}

	results := make([]*Result, len(files))
	pool, gctx := errgroup.WithContext(ctx)
	pool.SetLimit(parallel)
	for i, fpath := range files {
		i, fpath := i, fpath
		pool.Go(func() (err error) {
			results[i], err = s.SolveFile(gctx, fpath)
			return err
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
