package card_ga

// Fitness scores are built from two terms of roughly equal weight. The sum
// term is the distance of the sum group from its worst case; the product term
// is the same idea for the product group, scaled down by ProductScale so that
// both top out near 21. A perfect partition scores 42.

// SumScore is 21 when the sum group adds up to SumTarget.
func SumScore(sum int) int {
	return MaxSumDeviation - abs(SumTarget-sum)
}

// ProductScore truncates toward zero, matching an integer conversion of the
// floating point quotient.
func ProductScore(prod int) int {
	return int(float64(MaxProductDeviation-abs(ProductTarget-prod)) / float64(ProductScale))
}

// Fitness scores a product group given as raw genes.
func Fitness(genes []int) int {
	prod := 1
	for _, g := range genes {
		prod *= g
	}
	sum := 0
	for _, c := range complementOf(genes) {
		sum += c
	}
	return ProductScore(prod) + SumScore(sum)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
