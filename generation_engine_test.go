package card_ga

import (
	"errors"
	"io"
	test "testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// recorder keeps everything the engine reports and checks genotype validity
// as it goes.
type recorder struct {
	t         *test.T
	reports   []*GenerationReport
	offspring []*Offspring
	results   []*Result
}

func (r *recorder) GenerationEvaluated(report *GenerationReport) {
	for i, ind := range report.Individuals {
		if err := ind.Validate(); err != nil {
			r.t.Errorf("generation %d individual %d: %v", report.Generation, i, err)
		}
	}
	r.reports = append(r.reports, report)
}

func (r *recorder) OffspringCreated(generation int, off *Offspring, parents [2]*Individual) {
	if err := off.Individual.Validate(); err != nil {
		r.t.Errorf("generation %d offspring %d: %v", generation, off.Slot, err)
	}
	r.offspring = append(r.offspring, off)
}

func (r *recorder) RunFinished(result *Result) {
	r.results = append(r.results, result)
}

func testConfig() *Config {
	c := DefaultConfig()
	c.Trace = false
	return c
}

func TestNewGenerationEngineInvalidConfig(t *test.T) {
	_, err := NewGenerationEngine(nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	c := testConfig()
	c.PopulationSize = 0
	_, err = NewGenerationEngine(c)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestRunTerminates(t *test.T) {
	for seed := int64(1); seed <= 5; seed++ {
		c := testConfig()
		c.Seed = seed
		rec := &recorder{t: t}
		engine, err := NewGenerationEngine(c, WithLogger(quietLogger()), WithObserver(rec))
		require.NoError(t, err)

		result, err := engine.Run()
		require.NoError(t, err)

		assert.Contains(t, []Status{Won, Exhausted}, result.Status, "seed %d", seed)
		assert.Equal(t, result.Status, engine.Status)
		assert.LessOrEqual(t, result.Passes, c.MaxGenerations)
		assert.Len(t, rec.reports, result.Passes)
		assert.Len(t, rec.results, 1)
		require.NoError(t, result.Individual.Validate())
		assert.ElementsMatch(t, result.Complement, result.Individual.Complement())

		if result.Status == Won {
			assert.GreaterOrEqual(t, result.Evaluation.Score, c.WinScore)
		}
	}
}

func TestRunDeterministic(t *test.T) {
	run := func() *Result {
		c := testConfig()
		c.Seed = 2024
		c.MaxGenerations = 60
		engine, err := NewGenerationEngine(c, WithLogger(quietLogger()))
		require.NoError(t, err)
		result, err := engine.Run()
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	assert.Equal(t, a.Status, b.Status)
	assert.Equal(t, a.Generation, b.Generation)
	assert.Equal(t, a.Index, b.Index)
	assert.Equal(t, a.Individual.Genes, b.Individual.Genes)
}

func TestRunExhaustedReportsBestOfLastGeneration(t *test.T) {
	c := testConfig()
	c.Seed = 8
	c.MaxGenerations = 5
	c.WinScore = 43 // unreachable
	rec := &recorder{t: t}
	engine, err := NewGenerationEngine(c, WithLogger(quietLogger()), WithObserver(rec))
	require.NoError(t, err)

	result, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, Exhausted, result.Status)
	assert.Equal(t, 4, result.Generation)
	assert.Equal(t, 5, result.Passes)
	require.Len(t, rec.reports, 5)
	assert.Len(t, rec.offspring, 5*c.PopulationSize)

	last := rec.reports[4]
	bestIndex, best := 0, last.Fitness[0]
	for i, f := range last.Fitness {
		if f > best {
			bestIndex, best = i, f
		}
	}
	assert.Equal(t, bestIndex, result.Index)
	assert.Equal(t, best, result.Evaluation.Score)
	assert.Equal(t, last.Individuals[bestIndex].Genes, result.Individual.Genes)
	assert.False(t, result.FromStaging)
}

func TestRunWinsDuringEvaluation(t *test.T) {
	c := testConfig()
	c.Seed = 3
	c.PopulationSize = 6
	rec := &recorder{t: t}
	engine, err := NewGenerationEngine(c, WithLogger(quietLogger()), WithObserver(rec))
	require.NoError(t, err)

	for i := range engine.Population.Current {
		engine.Population.Current[i] = NewIndividual([]int{6, 7, 8, 9, 10})
	}
	engine.Population.Current[3] = NewIndividual([]int{5, 6, 1, 4, 3})

	result, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, Won, result.Status)
	assert.Equal(t, 0, result.Generation)
	assert.Equal(t, 3, result.Index)
	assert.Equal(t, 42, result.Evaluation.Score)
	assert.Equal(t, []int{2, 7, 8, 9, 10}, result.Complement)
	assert.Empty(t, rec.offspring, "no reproduction after a winner is evaluated")
}

// A winner found while filling staging still lets the pass finish, and the
// generation is not promoted.
func TestRunWinInStagingCompletesFill(t *test.T) {
	a := []int{1, 3, 4, 8, 9}  // fitness 35
	b := []int{2, 7, 10, 5, 6} // fitness 28

	ints := make([]int, 3*GeneCount) // initial population draws
	ints = append(ints,
		0, 40, 2, // slot 0: a x b split 3 -> 1,3,4,5,6
		0, 0, 0, // slot 1: a x a split 1
		0, 0, 0, // slot 2: a x a split 1
	)
	rng := &scriptedRand{ints: ints, floats: []float64{0.9, 0.9, 0.9}}

	c := testConfig()
	c.PopulationSize = 3
	rec := &recorder{t: t}
	engine, err := NewGenerationEngine(c, WithRand(rng), WithLogger(quietLogger()), WithObserver(rec))
	require.NoError(t, err)

	engine.Population.Current = []*Individual{NewIndividual(a), NewIndividual(b), NewIndividual(a)}
	current := engine.Population.Current

	result, err := engine.Run()
	require.NoError(t, err)

	assert.Equal(t, Won, result.Status)
	assert.True(t, result.FromStaging)
	assert.Equal(t, 0, result.Index)
	assert.Equal(t, []int{1, 3, 4, 5, 6}, result.Individual.Genes)
	assert.Len(t, rec.offspring, 3, "the staging fill runs to the end")
	require.Len(t, rec.reports, 1)
	assert.Equal(t, []int{35, 28, 35}, rec.reports[0].Fitness)
	assert.Equal(t, current, engine.Population.Current, "no promotion after a win")
	assert.Empty(t, rng.ints)
	assert.Empty(t, rng.floats)
}

func TestRunTwice(t *test.T) {
	c := testConfig()
	c.Seed = 5
	c.MaxGenerations = 2
	engine, err := NewGenerationEngine(c, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = engine.Run()
	require.NoError(t, err)
	_, err = engine.Run()
	assert.Error(t, err)
}
