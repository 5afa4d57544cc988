package analytics

import (
	"math/rand"
	"sort"

	"github.com/yourorg/backtest-analytics/internal/model"
)

const (
	// DefaultMonteCarloPaths is the number of bootstrap paths simulated.
	DefaultMonteCarloPaths = 160

	// Projection horizon bounds in trading sessions.
	HorizonMin = 40
	HorizonMax = 126

	// MinProjectionSamples is the smallest return history worth projecting;
	// below it the projection degenerates to the start value.
	MinProjectionSamples = 20
)

// Project builds a percentile-banded forward equity envelope by bootstrap
// resampling (with replacement) from the historical daily percent returns.
// The rng is injected so a fixed seed reproduces the projection exactly.
// Fewer than MinProjectionSamples returns yields a degenerate projection
// anchored at startValue rather than an error.
func Project(dailyReturnsPct []float64, startValue float64, paths int, rng *rand.Rand) *model.MonteCarloProjection {
	if paths <= 0 {
		paths = DefaultMonteCarloPaths
	}

	if len(dailyReturnsPct) < MinProjectionSamples {
		return &model.MonteCarloProjection{
			MedianPath: []float64{startValue},
			P10Path:    []float64{startValue},
			P90Path:    []float64{startValue},
			StartValue: startValue,
			EndMedian:  startValue,
		}
	}

	horizon := len(dailyReturnsPct)
	if horizon < HorizonMin {
		horizon = HorizonMin
	}
	if horizon > HorizonMax {
		horizon = HorizonMax
	}

	sorted := make([]float64, len(dailyReturnsPct))
	copy(sorted, dailyReturnsPct)
	sort.Float64s(sorted)

	equities := make([]float64, paths)
	for i := range equities {
		equities[i] = startValue
	}

	proj := &model.MonteCarloProjection{
		MedianPath: make([]float64, 0, horizon+1),
		P10Path:    make([]float64, 0, horizon+1),
		P90Path:    make([]float64, 0, horizon+1),
		StartValue: startValue,
	}
	appendEnvelope(proj, equities)

	cross := make([]float64, paths)
	for t := 0; t < horizon; t++ {
		for i := range equities {
			r := sorted[rng.Intn(len(sorted))] / 100
			equities[i] *= 1 + r
		}
		copy(cross, equities)
		appendEnvelope(proj, cross)
	}

	proj.EndMedian = proj.MedianPath[len(proj.MedianPath)-1]
	return proj
}

// appendEnvelope sorts the cross-section of path equities for one time step
// and appends its empirical 10th/50th/90th percentile ranks. Sorting the
// cross-section guarantees p10 <= median <= p90 at every step.
func appendEnvelope(proj *model.MonteCarloProjection, cross []float64) {
	sort.Float64s(cross)
	n := len(cross)
	proj.P10Path = append(proj.P10Path, cross[n/10])
	proj.MedianPath = append(proj.MedianPath, cross[n/2])
	proj.P90Path = append(proj.P90Path, cross[n*9/10])
}
