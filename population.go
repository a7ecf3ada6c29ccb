package card_ga

import (
	"errors"
	"fmt"
)

var ErrInvalidPopulationSize = errors.New("population size must be positive")

// Population owns the two generation buffers. Current is read during
// reproduction while Staging is filled one slot at a time; nothing is shared
// by reference between them.
type Population struct {
	Size    int
	Current []*Individual
	Staging []*Individual
	Fitness []int
	stale   bool
}

func NewPopulation(size int, rng Rand) (*Population, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPopulationSize, size)
	}
	p := &Population{
		Size:    size,
		Current: make([]*Individual, size),
		Staging: make([]*Individual, size),
		Fitness: make([]int, size),
		stale:   true,
	}
	for i := range p.Current {
		p.Current[i] = NewIndividualFromRandom(rng)
	}
	return p, nil
}

// EvaluateAll recomputes the fitness vector for the current generation.
func (p *Population) EvaluateAll(e *Evaluator) []int {
	for i, ind := range p.Current {
		p.Fitness[i] = e.Score(ind)
	}
	p.stale = false
	return p.Fitness
}

// Stale reports whether the fitness vector needs EvaluateAll before use.
func (p *Population) Stale() bool {
	return p.stale
}

// Promote replaces the current generation with deep copies of the staged
// individuals and clears staging for the next pass.
func (p *Population) Promote() error {
	for i, ind := range p.Staging {
		if ind == nil {
			return fmt.Errorf("staging slot %d is empty", i)
		}
	}
	next := make([]*Individual, p.Size)
	for i, ind := range p.Staging {
		next[i] = ind.Clone()
	}
	p.Current = next
	for i := range p.Staging {
		p.Staging[i] = nil
	}
	p.stale = true
	return nil
}

// Best returns the index and fitness of the first strict maximum, so ties go
// to the lowest index.
func (p *Population) Best() (index, score int) {
	index, score = 0, p.Fitness[0]
	for i, f := range p.Fitness {
		if f > score {
			index, score = i, f
		}
	}
	return
}

// FirstWinner returns the lowest index whose fitness reaches winScore, or -1.
func (p *Population) FirstWinner(winScore int) int {
	for i, f := range p.Fitness {
		if f >= winScore {
			return i
		}
	}
	return -1
}
