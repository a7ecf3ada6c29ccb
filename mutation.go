package card_ga

import "fmt"

// Mutation records a single gene replacement.
type Mutation struct {
	Position int
	From     int
	To       int
}

func (m Mutation) String() string {
	return fmt.Sprintf("gene %d: %d -> %d", m.Position, m.From, m.To)
}

// Mutate overwrites one random gene with a random card from the complement,
// so the genotype stays duplicate free. genes is changed in place.
func Mutate(genes []int, rng Rand) Mutation {
	possible := complementOf(genes)

	m := Mutation{Position: rng.Intn(GeneCount)}
	m.From = genes[m.Position]
	m.To = possible[rng.Intn(len(possible))]
	genes[m.Position] = m.To
	return m
}
