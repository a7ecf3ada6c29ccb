package card_ga

import (
	"errors"
	"fmt"
	"strings"

	cp "github.com/jinzhu/copier"
)

var ErrInvalidGenotype = errors.New("invalid genotype")

// Individual is a candidate partition. Genes hold the product group in draw
// order; the sum group is implied by the complement.
type Individual struct {
	Genes []int
}

func NewIndividual(genes []int) *Individual {
	g := make([]int, len(genes))
	copy(g, genes)
	return &Individual{Genes: g}
}

// NewIndividualFromRandom draws GeneCount distinct cards without replacement.
func NewIndividualFromRandom(rng Rand) *Individual {
	possible := make([]int, CardCount)
	copy(possible, Cards[:])

	genes := make([]int, GeneCount)
	for i := range genes {
		index := rng.Intn(len(possible))
		genes[i] = possible[index]
		possible = append(possible[:index], possible[index+1:]...)
	}
	return &Individual{Genes: genes}
}

func (ind *Individual) Clone() *Individual {
	clone := &Individual{}
	if err := cp.CopyWithOption(clone, ind, cp.Option{DeepCopy: true}); err != nil {
		panic(fmt.Errorf("Cloning individual failed! %w", err))
	}
	return clone
}

// Complement returns the sum group in ascending card order.
func (ind *Individual) Complement() []int {
	return complementOf(ind.Genes)
}

func (ind *Individual) Product() int {
	prod := 1
	for _, g := range ind.Genes {
		prod *= g
	}
	return prod
}

func (ind *Individual) Sum() int {
	sum := 0
	for _, c := range ind.Complement() {
		sum += c
	}
	return sum
}

func (ind *Individual) Validate() error {
	return validateGenes(ind.Genes)
}

func (ind *Individual) String() string {
	return fmt.Sprintf("PROD: %s SUM: %s", joinCards(ind.Genes), joinCards(ind.Complement()))
}

func complementOf(genes []int) []int {
	var used [CardCount + 1]bool
	for _, g := range genes {
		if g >= 1 && g <= CardCount {
			used[g] = true
		}
	}
	rest := make([]int, 0, CardCount)
	for _, c := range Cards {
		if !used[c] {
			rest = append(rest, c)
		}
	}
	return rest
}

func validateGenes(genes []int) error {
	if len(genes) != GeneCount {
		return fmt.Errorf("%w: %d genes, want %d", ErrInvalidGenotype, len(genes), GeneCount)
	}
	var seen [CardCount + 1]bool
	for i, g := range genes {
		if g < 1 || g > CardCount {
			return fmt.Errorf("%w: gene %d is %d, outside 1..%d", ErrInvalidGenotype, i, g, CardCount)
		}
		if seen[g] {
			return fmt.Errorf("%w: card %d repeated", ErrInvalidGenotype, g)
		}
		seen[g] = true
	}
	return nil
}

func joinCards(cards []int) string {
	var sb strings.Builder
	for i, c := range cards {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", c)
	}
	return sb.String()
}
