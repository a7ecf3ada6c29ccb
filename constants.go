package card_ga

import (
	"math/rand"
	"time"
)

// Rand is the randomness source threaded through every operator that draws.
// Draws must come from a single stream so a seeded run replays exactly.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// seededRand wraps one *rand.Rand. The engine is single threaded, so unlike
// a pooled source there is exactly one stream and draw order is preserved.
type seededRand struct {
	r *rand.Rand
}

// NewRand returns a single stream source. If seed is 0, the current time is
// used (non-deterministic). A non-zero seed gives reproducible results.
func NewRand(seed int64) Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seededRand{r: rand.New(rand.NewSource(seed))}
}

func (sr *seededRand) Intn(n int) int {
	return sr.r.Intn(n)
}

func (sr *seededRand) Float64() float64 {
	return sr.r.Float64()
}

const (
	CardCount = 10
	GeneCount = 5

	SumTarget           = 36
	MaxSumDeviation     = 21    // 36 - (1+2+3+4+5)
	ProductTarget       = 360
	MaxProductDeviation = 29880 // (6*7*8*9*10) - 360

	// ProductScale balances the product term against the sum term. The
	// division is integral, so the scale is 1422 and not 1422.857.
	ProductScale = MaxProductDeviation / MaxSumDeviation

	DefaultPopulationSize = 30
	DefaultMaxGenerations = 1000
	DefaultMutationRate   = 0.1
	DefaultWinScore       = 42
)

// Cards is the card universe shared by every individual. Treat as read only.
var Cards = [CardCount]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

type Status int

const (
	Running Status = iota
	Won
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Won:
		return "won"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}
