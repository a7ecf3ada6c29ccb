package card_ga

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyGeneration  = errors.New("cannot select from an empty generation")
	ErrSelectionOverrun = errors.New("roulette walk exhausted without a pick")
)

// Selector picks parents with probability proportional to fitness.
type Selector struct {
	rng Rand
	log *logrus.Entry

	// Fallbacks counts draws that found no positive fitness and were made
	// uniformly instead.
	Fallbacks uint
}

func NewSelector(rng Rand, log *logrus.Entry) *Selector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Selector{rng: rng, log: log}
}

// Select spins the wheel once. Negative fitness is clamped to zero before the
// wheel is built. A wheel with no positive slice falls back to a uniform draw.
func (s *Selector) Select(fitness []int) (int, error) {
	if len(fitness) == 0 {
		return 0, ErrEmptyGeneration
	}

	total := 0
	for _, f := range fitness {
		total += clampFitness(f)
	}

	if total <= 0 {
		s.Fallbacks++
		s.log.WithField("size", len(fitness)).Warn("No positive fitness in generation, selecting uniformly")
		return s.rng.Intn(len(fitness)), nil
	}

	chosen := s.rng.Intn(total)
	sum := 0
	for i, f := range fitness {
		sum += clampFitness(f)
		if chosen < sum {
			return i, nil
		}
	}
	return 0, ErrSelectionOverrun
}

func clampFitness(f int) int {
	if f < 0 {
		return 0
	}
	return f
}
