package card_ga

import (
	"gonum.org/v1/gonum/stat"
)

// GenerationMetrics holds aggregate fitness metrics for one evaluation pass.
type GenerationMetrics struct {
	Best      int
	BestIndex int
	Worst     int
	Mean      float64
	StdDev    float64
	Winners   int
}

// NewGenerationMetrics summarizes a fitness vector. Best keeps the first
// strict maximum.
func NewGenerationMetrics(fitness []int, winScore int) GenerationMetrics {
	if len(fitness) == 0 {
		return GenerationMetrics{}
	}

	m := GenerationMetrics{Best: fitness[0], Worst: fitness[0]}
	values := make([]float64, len(fitness))
	for i, f := range fitness {
		values[i] = float64(f)
		if f > m.Best {
			m.Best = f
			m.BestIndex = i
		}
		if f < m.Worst {
			m.Worst = f
		}
		if f >= winScore {
			m.Winners++
		}
	}

	m.Mean, m.StdDev = stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		m.StdDev = 0
	}
	return m
}
