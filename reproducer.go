package card_ga

import (
	"errors"
	"fmt"
)

var ErrInvalidSplit = errors.New("split point out of range")

// Recombine builds one offspring from two parents. Genes before split come
// from a verbatim. Genes from split on come from b at the same position,
// unless that card is already taken, in which case a card is drawn from the
// repair pool: b's own pre-split cards that a did not use.
func Recombine(a, b []int, split int, rng Rand) ([]int, error) {
	if split < 1 || split > GeneCount-1 {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidSplit, split, GeneCount-1)
	}
	if len(a) != GeneCount || len(b) != GeneCount {
		return nil, fmt.Errorf("%w: parents of length %d and %d", ErrInvalidGenotype, len(a), len(b))
	}

	var remaining [CardCount + 1]bool
	for _, c := range Cards {
		remaining[c] = true
	}

	child := make([]int, GeneCount)
	for i := 0; i < split; i++ {
		child[i] = a[i]
		remaining[a[i]] = false
	}

	pool := make([]int, 0, split)
	for i := 0; i < split; i++ {
		if remaining[b[i]] {
			pool = append(pool, b[i])
		}
	}

	for i := split; i < GeneCount; i++ {
		if remaining[b[i]] {
			child[i] = b[i]
			remaining[b[i]] = false
			continue
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("%w: repair pool empty at position %d", ErrInvalidGenotype, i)
		}
		index := rng.Intn(len(pool))
		child[i] = pool[index]
		pool = append(pool[:index], pool[index+1:]...)
	}

	return child, nil
}

// Offspring records how one staging slot was filled.
type Offspring struct {
	Slot       int
	ParentA    int
	ParentB    int
	Split      int
	Mutation   *Mutation
	Individual *Individual
	Evaluation *Evaluation
}

// Reproducer fills staging slots: two roulette picks, a split, recombination
// and an optional mutation, in that draw order.
type Reproducer struct {
	rng          Rand
	Selector     *Selector
	Evaluator    *Evaluator
	MutationRate float64
}

func NewReproducer(rng Rand, selector *Selector, evaluator *Evaluator, mutationRate float64) *Reproducer {
	return &Reproducer{
		rng:          rng,
		Selector:     selector,
		Evaluator:    evaluator,
		MutationRate: mutationRate,
	}
}

func (r *Reproducer) Reproduce(p *Population, slot int) (*Offspring, error) {
	if p.Stale() {
		return nil, fmt.Errorf("fitness vector is stale, evaluate the generation first")
	}

	a, err := r.Selector.Select(p.Fitness)
	if err != nil {
		return nil, fmt.Errorf("selecting first parent: %w", err)
	}
	b, err := r.Selector.Select(p.Fitness)
	if err != nil {
		return nil, fmt.Errorf("selecting second parent: %w", err)
	}

	split := 1 + r.rng.Intn(GeneCount-1)
	genes, err := Recombine(p.Current[a].Genes, p.Current[b].Genes, split, r.rng)
	if err != nil {
		return nil, fmt.Errorf("recombining %d and %d: %w", a, b, err)
	}

	off := &Offspring{
		Slot:    slot,
		ParentA: a,
		ParentB: b,
		Split:   split,
	}
	if r.rng.Float64() < r.MutationRate {
		m := Mutate(genes, r.rng)
		off.Mutation = &m
	}

	off.Individual = &Individual{Genes: genes}
	off.Evaluation = r.Evaluator.Evaluate(off.Individual)
	p.Staging[slot] = off.Individual
	return off, nil
}
