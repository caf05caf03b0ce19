package pav

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary describes how often genes are present across individuals. A gene
// counts as present for an individual when its recoded call is
// GAPITPresentCode.
type Summary struct {
	Individuals int
	Genes       int

	MeanPresence   float64
	MedianPresence float64
	MinPresence    float64
	MaxPresence    float64
}

func (s Summary) String() string {
	return fmt.Sprintf("%d individuals x %d genes; per-individual presence rate mean %.3f, median %.3f, min %.3f, max %.3f",
		s.Individuals, s.Genes, s.MeanPresence, s.MedianPresence, s.MinPresence, s.MaxPresence)
}

// PresenceRates returns, for each individual in order, the fraction of its
// calls that are present.
func PresenceRates(m *Matrix) []float64 {
	rates := make([]float64, len(m.Individuals))
	for i, calls := range m.Calls {
		if len(calls) == 0 {
			continue
		}

		present := 0
		for _, call := range calls {
			if call == GAPITPresentCode {
				present++
			}
		}
		rates[i] = float64(present) / float64(len(calls))
	}

	return rates
}

// Summarize computes presence rate statistics across individuals. A matrix
// without individuals yields a zero Summary apart from the gene count.
func Summarize(m *Matrix) (Summary, error) {
	out := Summary{
		Individuals: len(m.Individuals),
		Genes:       len(m.Genes),
	}

	if len(m.Individuals) == 0 {
		return out, nil
	}

	rates := stats.Float64Data(PresenceRates(m))

	var err error
	if out.MeanPresence, err = rates.Mean(); err != nil {
		return out, err
	}
	if out.MedianPresence, err = rates.Median(); err != nil {
		return out, err
	}
	if out.MinPresence, err = rates.Min(); err != nil {
		return out, err
	}
	if out.MaxPresence, err = rates.Max(); err != nil {
		return out, err
	}

	return out, nil
}
