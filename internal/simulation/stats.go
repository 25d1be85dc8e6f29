package simulation

import (
	"context"
	"math"
	"sort"
)

// Stats summarizes draws-until-match over repeated trials.
type Stats struct {
	Trials  int     `json:"trials"`
	Matched int     `json:"matched"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	P50     float64 `json:"p50"`
	P90     float64 `json:"p90"`
	P99     float64 `json:"p99"`
}

// RunTrials repeats the hunt and aggregates draws-until-match statistics.
// Trials aborted by cancellation or the draw cap are counted but excluded
// from the distribution.
func (r *Runner) RunTrials(ctx context.Context, trials int) (*Stats, error) {
	stats := &Stats{Trials: trials}
	samples := make([]uint64, 0, trials)

	for i := 0; i < trials; i++ {
		if ctx.Err() != nil {
			break
		}
		result, err := r.Run(ctx)
		if err != nil {
			return nil, err
		}
		if result.Matched {
			stats.Matched++
			samples = append(samples, result.Draws)
		}
	}

	summarize(stats, samples)
	return stats, nil
}

func summarize(stats *Stats, samples []uint64) {
	n := len(samples)
	if n == 0 {
		return
	}

	var sum float64
	for _, v := range samples {
		sum += float64(v)
	}
	stats.Mean = sum / float64(n)

	var acc float64
	for _, v := range samples {
		d := float64(v) - stats.Mean
		acc += d * d
	}
	stats.StdDev = math.Sqrt(acc / float64(n))

	sorted := append([]uint64(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	stats.P50 = percentile(sorted, 0.50)
	stats.P90 = percentile(sorted, 0.90)
	stats.P99 = percentile(sorted, 0.99)
}

// percentile linearly interpolates over a sorted sample.
func percentile(sorted []uint64, p float64) float64 {
	n := len(sorted)
	if n == 1 || p <= 0 {
		return float64(sorted[0])
	}
	if p >= 1 {
		return float64(sorted[n-1])
	}
	pos := p * float64(n-1)
	i := int(math.Floor(pos))
	frac := pos - float64(i)
	if i+1 >= n {
		return float64(sorted[i])
	}
	return float64(sorted[i])*(1-frac) + float64(sorted[i+1])*frac
}
