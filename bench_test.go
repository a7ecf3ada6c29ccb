package card_ga

import (
	"testing"
)

// BenchmarkRun measures full runs without observers. Run with:
// go test -run=^$ -bench=BenchmarkRun -benchmem
func BenchmarkRun(b *testing.B) {
	logger := quietLogger()
	for iter := 0; iter < b.N; iter++ {
		config := DefaultConfig()
		config.Trace = false
		config.Seed = int64(iter + 1)

		engine, err := NewGenerationEngine(config, WithLogger(logger))
		if err != nil {
			b.Fatalf("NewGenerationEngine returned error: %v", err)
		}
		if _, err := engine.Run(); err != nil {
			b.Fatalf("Run returned error: %v", err)
		}
	}
}

func BenchmarkRecombine(b *testing.B) {
	rng := NewRand(42)
	parents := make([]*Individual, 64)
	for i := range parents {
		parents[i] = NewIndividualFromRandom(rng)
	}

	b.ResetTimer()
	for iter := 0; iter < b.N; iter++ {
		a := parents[iter%len(parents)]
		c := parents[(iter*7+3)%len(parents)]
		if _, err := Recombine(a.Genes, c.Genes, 1+iter%(GeneCount-1), rng); err != nil {
			b.Fatalf("Recombine returned error: %v", err)
		}
	}
}
