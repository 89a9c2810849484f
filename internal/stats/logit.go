package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrSingularModel  = errors.New("stats: model matrix is singular")
	ErrNoObservations = errors.New("stats: no observations for regression")
)

const (
	logitMaxIterations = 50
	logitTolerance     = 1e-8
)

// Coefficient is one fitted model term with its Wald test.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdError float64 `json:"std_error"`
	Z        float64 `json:"z"`
	PValue   float64 `json:"p_value"`
}

// LogitResult is a fitted logistic regression.
type LogitResult struct {
	Coefficients []Coefficient `json:"coefficients"`
	N            int           `json:"n"`
	Iterations   int           `json:"iterations"`
	Converged    bool          `json:"converged"`
}

// Coefficient looks a term up by name.
func (r LogitResult) Coefficient(name string) (Coefficient, bool) {
	for _, c := range r.Coefficients {
		if c.Name == name {
			return c, true
		}
	}
	return Coefficient{}, false
}

// Logit fits a binary logistic regression by iteratively reweighted least
// squares. The design matrix must already include an intercept column;
// names labels the columns in order. Standard errors come from the
// inverse Fisher information at the fitted coefficients.
func Logit(names []string, x *mat.Dense, y []float64) (LogitResult, error) {
	n, p := x.Dims()
	if n == 0 || len(y) != n {
		return LogitResult{}, ErrNoObservations
	}
	if len(names) != p {
		return LogitResult{}, fmt.Errorf("stats: %d names for %d columns", len(names), p)
	}

	beta := mat.NewVecDense(p, nil)
	eta := mat.NewVecDense(n, nil)
	w := make([]float64, n)
	z := mat.NewVecDense(n, nil)

	var (
		iterations int
		converged  bool
	)
	xtwx := mat.NewDense(p, p, nil)
	xtwz := mat.NewVecDense(p, nil)

	for iterations = 1; iterations <= logitMaxIterations; iterations++ {
		eta.MulVec(x, beta)
		for i := 0; i < n; i++ {
			mu := sigmoid(eta.AtVec(i))
			// Bounded away from 0 and 1 so the weights stay finite on
			// separable data.
			mu = math.Min(math.Max(mu, 1e-10), 1-1e-10)
			w[i] = mu * (1 - mu)
			z.SetVec(i, eta.AtVec(i)+(y[i]-mu)/w[i])
		}

		weightedNormal(xtwx, xtwz, x, w, z)

		next := mat.NewVecDense(p, nil)
		if err := next.SolveVec(xtwx, xtwz); err != nil {
			return LogitResult{}, fmt.Errorf("%w: %v", ErrSingularModel, err)
		}

		var maxDelta float64
		for j := 0; j < p; j++ {
			maxDelta = math.Max(maxDelta, math.Abs(next.AtVec(j)-beta.AtVec(j)))
		}
		beta.CopyVec(next)
		if maxDelta < logitTolerance {
			converged = true
			break
		}
	}

	// Covariance is the inverse of the final information matrix.
	var cov mat.Dense
	if err := cov.Inverse(xtwx); err != nil {
		return LogitResult{}, fmt.Errorf("%w: %v", ErrSingularModel, err)
	}

	normal := distuv.UnitNormal
	coefs := make([]Coefficient, p)
	for j := 0; j < p; j++ {
		se := math.Sqrt(cov.At(j, j))
		zstat := beta.AtVec(j) / se
		coefs[j] = Coefficient{
			Name:     names[j],
			Estimate: beta.AtVec(j),
			StdError: se,
			Z:        zstat,
			PValue:   2 * normal.Survival(math.Abs(zstat)),
		}
	}

	return LogitResult{
		Coefficients: coefs,
		N:            n,
		Iterations:   iterations,
		Converged:    converged,
	}, nil
}

// weightedNormal fills xtwx = X'WX and xtwz = X'Wz.
func weightedNormal(xtwx *mat.Dense, xtwz *mat.VecDense, x *mat.Dense, w []float64, z *mat.VecDense) {
	n, p := x.Dims()
	for a := 0; a < p; a++ {
		var rhs float64
		for i := 0; i < n; i++ {
			rhs += x.At(i, a) * w[i] * z.AtVec(i)
		}
		xtwz.SetVec(a, rhs)
		for b := a; b < p; b++ {
			var s float64
			for i := 0; i < n; i++ {
				s += x.At(i, a) * w[i] * x.At(i, b)
			}
			xtwx.Set(a, b, s)
			xtwx.Set(b, a, s)
		}
	}
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}
