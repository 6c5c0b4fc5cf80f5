package shamir

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func pts(xy ...int64) []Point {
	var points []Point
	for i := 0; i+1 < len(xy); i += 2 {
		points = append(points, Point{X: xy[i], Y: big.NewInt(xy[i+1])})
	}

	return points
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		points []Point
		k      int
		want   int64
	}{
		// y = 3x + 1
		{"line", pts(1, 4, 2, 7, 3, 10), 2, 1},
		// y = x^2 + x + 1
		{"quadratic", pts(1, 3, 2, 7, 3, 13), 3, 1},
		// y = x^2 + 2
		{"quadratic literal", pts(1, 3, 2, 6, 3, 11), 3, 2},
		// only the first three are used, the fourth is not on the curve
		{"extra points ignored", pts(1, 4, 2, 7, 3, 12, 6, 1000), 3, 3},
		{"constant", pts(5, 42, 6, 43), 1, 42},
		{"out of order", pts(3, 13, 1, 3, 2, 7), 3, 1},
		// y = -2x^2 + 5x - 7
		{"negative", pts(1, -4, 2, -5, 3, -10), 3, -7},
		{"x includes zero", pts(0, 9, 1, 12, 2, 15), 3, 9},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Reconstruct(tt.points, tt.k)
			require.NoError(t, err)
			require.Equal(t, big.NewInt(tt.want).String(), got.String())
		})
	}
}

func TestReconstructFirstK(t *testing.T) {
	t.Parallel()

	// the first two points lie on y = 3x + 1, the last two on y = x + 100
	points := pts(1, 4, 2, 7, 10, 110, 20, 120)
	got, err := Reconstruct(points, 2)
	require.NoError(t, err)
	require.Equal(t, "1", got.String())

	got, err = Reconstruct(points[2:], 2)
	require.NoError(t, err)
	require.Equal(t, "100", got.String())
}

func TestReconstructErrors(t *testing.T) {
	t.Parallel()

	t.Run("insufficient points", func(t *testing.T) {
		_, err := Reconstruct(pts(1, 4, 2, 7), 3)
		require.True(t, errors.Is(err, ErrInsufficientPoints), "%+v", err)

		_, err = Reconstruct(nil, 1)
		require.True(t, errors.Is(err, ErrInsufficientPoints), "%+v", err)
	})

	t.Run("insufficient points do no arithmetic", func(t *testing.T) {
		// nil y would fail if it was touched
		_, err := Reconstruct([]Point{{X: 1}}, 2)
		require.True(t, errors.Is(err, ErrInsufficientPoints), "%+v", err)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		_, err := Reconstruct(pts(1, 4), 0)
		require.True(t, errors.Is(err, ErrInvalidThreshold), "%+v", err)
	})

	t.Run("duplicate x", func(t *testing.T) {
		_, err := Reconstruct(pts(1, 4, 2, 7, 1, 4), 3)
		require.True(t, errors.Is(err, ErrDuplicateXCoordinate), "%+v", err)
	})

	t.Run("duplicate x outside selection", func(t *testing.T) {
		got, err := Reconstruct(pts(1, 4, 2, 7, 1, 4), 2)
		require.NoError(t, err)
		require.Equal(t, "1", got.String())
	})

	t.Run("non integer basis", func(t *testing.T) {
		// y = 3x + 1 sampled at 1 and 3, L_0(0) = 3/2
		_, err := Reconstruct(pts(1, 4, 3, 10), 2)
		require.True(t, errors.Is(err, ErrNonIntegerBasis), "%+v", err)
	})

	t.Run("missing y", func(t *testing.T) {
		_, err := Reconstruct([]Point{{X: 1}, {X: 2, Y: big.NewInt(1)}}, 2)
		require.Error(t, err)
	})
}

func TestBasisAtZero(t *testing.T) {
	t.Parallel()

	xs := []int64{1, 2, 3}
	want := []int64{3, -3, 1}
	for i := range xs {
		got, err := BasisAtZero(xs, i)
		require.NoError(t, err)
		require.Equal(t, want[i], got.Int64())
	}

	_, err := BasisAtZero(xs, 3)
	require.Error(t, err)

	_, err = BasisAtZero([]int64{2, 2}, 1)
	require.True(t, errors.Is(err, ErrDuplicateXCoordinate))

	got, err := BasisAtZero([]int64{7}, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Int64())
}

func TestPoly(t *testing.T) {
	t.Parallel()

	p := Poly{big.NewInt(1), big.NewInt(1), big.NewInt(1)}
	require.Equal(t, 2, p.Degree())
	require.Equal(t, "1", p.Eval(0).String())
	require.Equal(t, "13", p.Eval(3).String())
	require.Equal(t, "3", p.Eval(-2).String())

	shares := p.Shares(1, 2, 3)
	require.Len(t, shares, 3)
	require.Equal(t, int64(2), shares[1].X)
	require.Equal(t, "7", shares[1].Y.String())

	r := rand.New(rand.NewSource(1))
	rp, err := NewRandomPoly(r, big.NewInt(5), 4, big.NewInt(1000))
	require.NoError(t, err)
	require.Equal(t, 4, rp.Degree())
	require.Equal(t, "5", rp[0].String())
	require.NotZero(t, rp[4].Sign())

	_, err = NewRandomPoly(r, big.NewInt(5), -1, big.NewInt(1000))
	require.Error(t, err)
}

// consecutive x from 1 always give integer basis values
func consecutiveXs(k int) []int64 {
	xs := make([]int64, k)
	for i := range xs {
		xs[i] = int64(i + 1)
	}

	return xs
}

func TestReconstructProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	limit := new(big.Int).Lsh(big.NewInt(1), 256)

	properties.Property("reconstruct(shares of P, k) == P(0) for every order", prop.ForAll(
		func(seed int64, degree int) bool {
			r := rand.New(rand.NewSource(seed))
			secret := new(big.Int).Rand(r, limit)
			p, err := NewRandomPoly(r, secret, degree, limit)
			if err != nil {
				return false
			}

			xs := consecutiveXs(degree + 1)
			r.Shuffle(len(xs), func(i, j int) { xs[i], xs[j] = xs[j], xs[i] })

			got, err := Reconstruct(p.Shares(xs...), degree+1)
			return err == nil && got.Cmp(secret) == 0
		},
		gen.Int64(),
		gen.IntRange(0, 12),
	))

	properties.Property("fewer than k points always fail", prop.ForAll(
		func(k, missing int) bool {
			if missing > k {
				missing = k
			}
			p := Poly{big.NewInt(1)}
			_, err := Reconstruct(p.Shares(consecutiveXs(k - missing)...), k)
			return errors.Is(err, ErrInsufficientPoints)
		},
		gen.IntRange(1, 20),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

func BenchmarkReconstruct(b *testing.B) {
	r := rand.New(rand.NewSource(42))
	limit := new(big.Int).Lsh(big.NewInt(1), 256)
	p, err := NewRandomPoly(r, big.NewInt(123456789), 9, limit)
	if err != nil {
		b.Fatalf("%+v", err)
	}
	points := p.Shares(consecutiveXs(10)...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Reconstruct(points, 10); err != nil {
			b.Fatalf("%+v", err)
		}
	}
}
