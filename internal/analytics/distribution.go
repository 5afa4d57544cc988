package analytics

import (
	"math"
	"sort"

	"github.com/yourorg/backtest-analytics/internal/model"
)

// DefaultHistogramBins is the return-distribution histogram resolution.
const DefaultHistogramBins = 40

// Distribution buckets the daily returns (in percent) into a fixed-width
// histogram spanning [min, max] and computes the distribution moments and
// empirical tail quantiles. With no valid returns the span degenerates to
// [-1, 1] with all-zero counts and stats.
func Distribution(curve []model.EquityPoint, bins int) model.ReturnDistribution {
	if bins <= 1 {
		bins = DefaultHistogramBins
	}

	returns := DailyReturns(curve)
	pct := make([]float64, len(returns))
	for i, r := range returns {
		pct[i] = r * 100
	}

	lo, hi := -1.0, 1.0
	if len(pct) > 0 {
		lo, hi = pct[0], pct[0]
		for _, v := range pct {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		// A single distinct value gives a zero-width span.
		if hi <= lo {
			lo, hi = lo-1, hi+1
		}
	}

	width := (hi - lo) / float64(bins)
	centers := make([]float64, bins)
	counts := make([]int, bins)
	for i := range centers {
		centers[i] = lo + width*(float64(i)+0.5)
	}
	for _, v := range pct {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}

	return model.ReturnDistribution{
		Bins:   centers,
		Counts: counts,
		Stats:  distributionStats(pct),
	}
}

// distributionStats computes population moments and the empirical VaR
// quantiles of the percent-return sample. All zeros when the sample is empty.
func distributionStats(pct []float64) model.DistributionStats {
	if len(pct) == 0 {
		return model.DistributionStats{}
	}

	sorted := make([]float64, len(pct))
	copy(sorted, pct)
	sort.Float64s(sorted)

	mean, std := meanStd(pct)

	skew, kurt := 0.0, 0.0
	if std != 0 {
		var m3, m4 float64
		for _, v := range pct {
			d := (v - mean) / std
			m3 += d * d * d
			m4 += d * d * d * d
		}
		n := float64(len(pct))
		skew = m3 / n
		kurt = m4/n - 3
	}

	n := len(sorted)
	return model.DistributionStats{
		Mean:     mean,
		Median:   median(sorted),
		Std:      std,
		Skewness: skew,
		Kurtosis: kurt,
		Min:      sorted[0],
		Max:      sorted[n-1],
		VaR95:    sorted[int(math.Floor(0.05*float64(n-1)))],
		VaR99:    sorted[int(math.Floor(0.01*float64(n-1)))],
	}
}

// median of an already-sorted sample.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
