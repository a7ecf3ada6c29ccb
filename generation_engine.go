package card_ga

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// GenerationEngine runs the generational loop: evaluate, check for a winner,
// fill staging, promote. It owns both generation buffers.
type GenerationEngine struct {
	Config     *Config
	RunID      string
	Population *Population
	Evaluator  *Evaluator
	Reproducer *Reproducer
	Status     Status
	Generation int

	rng       Rand
	observers []Observer
	log       *logrus.Entry
}

type Option func(*GenerationEngine)

// WithRand replaces the seeded source built from Config.Seed.
func WithRand(rng Rand) Option {
	return func(ge *GenerationEngine) { ge.rng = rng }
}

func WithObserver(o Observer) Option {
	return func(ge *GenerationEngine) { ge.observers = append(ge.observers, o) }
}

func WithLogger(log *logrus.Logger) Option {
	return func(ge *GenerationEngine) { ge.log = logrus.NewEntry(log) }
}

func NewGenerationEngine(config *Config, opts ...Option) (*GenerationEngine, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config cannot be nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ge := &GenerationEngine{
		Config: config,
		RunID:  uuid.NewString(),
		log:    logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(ge)
	}
	if ge.rng == nil {
		ge.rng = NewRand(config.Seed)
	}
	ge.log = ge.log.WithFields(logrus.Fields{"component": "engine", "run": ge.RunID})

	pop, err := NewPopulation(config.PopulationSize, ge.rng)
	if err != nil {
		return nil, err
	}
	ge.Population = pop
	ge.Evaluator = NewEvaluator()
	ge.Reproducer = NewReproducer(ge.rng, NewSelector(ge.rng, ge.log.WithField("component", "selector")),
		ge.Evaluator, config.MutationRate)
	ge.Status = Running
	return ge, nil
}

// Run evolves until a winner shows up or MaxGenerations evaluation passes
// have been made. It is not safe to call Run twice.
func (ge *GenerationEngine) Run() (*Result, error) {
	if ge.Status != Running {
		return nil, fmt.Errorf("engine already finished with status %s", ge.Status)
	}

	ge.log.WithFields(logrus.Fields{
		"population":      ge.Config.PopulationSize,
		"max_generations": ge.Config.MaxGenerations,
		"mutation_rate":   ge.Config.MutationRate,
		"seed":            ge.Config.Seed,
	}).Info("Starting run")

	var result *Result
	for ge.Generation = 0; ge.Generation < ge.Config.MaxGenerations; ge.Generation++ {
		var err error
		if result, err = ge.step(); err != nil {
			ge.log.WithError(err).WithField("generation", ge.Generation).Error("Run aborted")
			return nil, err
		}
		if result != nil {
			break
		}
	}

	ge.Status = result.Status
	for _, o := range ge.observers {
		o.RunFinished(result)
	}
	ge.log.WithFields(logrus.Fields{
		"status":     result.Status,
		"generation": result.Generation,
		"fitness":    result.Evaluation.Score,
		"individual": result.Individual.String(),
	}).Info("Run finished")
	return result, nil
}

// step makes one evaluation pass and, unless it finds a winner, one
// reproduction pass. A non-nil result ends the run.
func (ge *GenerationEngine) step() (*Result, error) {
	pop := ge.Population
	pop.EvaluateAll(ge.Evaluator)

	report := newGenerationReport(ge.RunID, ge.Generation, pop, ge.Config.WinScore)
	for _, o := range ge.observers {
		o.GenerationEvaluated(report)
	}
	ge.log.WithFields(logrus.Fields{
		"generation": ge.Generation,
		"best":       report.Metrics.Best,
		"worst":      report.Metrics.Worst,
		"mean":       report.Metrics.Mean,
		"stddev":     report.Metrics.StdDev,
	}).Debug("Generation evaluated")

	if i := pop.FirstWinner(ge.Config.WinScore); i >= 0 {
		return ge.result(Won, i, pop.Current[i], false), nil
	}

	// A winning offspring does not stop the fill; the pass always completes.
	var winner *Offspring
	for slot := 0; slot < pop.Size; slot++ {
		off, err := ge.Reproducer.Reproduce(pop, slot)
		if err != nil {
			return nil, fmt.Errorf("generation %d slot %d: %w", ge.Generation, slot, err)
		}
		parents := [2]*Individual{pop.Current[off.ParentA], pop.Current[off.ParentB]}
		for _, o := range ge.observers {
			o.OffspringCreated(ge.Generation, off, parents)
		}
		if winner == nil && off.Evaluation.Score >= ge.Config.WinScore {
			winner = off
		}
	}

	if winner != nil {
		return ge.result(Won, winner.Slot, winner.Individual, true), nil
	}

	if ge.Generation == ge.Config.MaxGenerations-1 {
		i, _ := pop.Best()
		return ge.result(Exhausted, i, pop.Current[i], false), nil
	}

	if err := pop.Promote(); err != nil {
		return nil, fmt.Errorf("generation %d: %w", ge.Generation, err)
	}
	return nil, nil
}

func (ge *GenerationEngine) result(status Status, index int, ind *Individual, fromStaging bool) *Result {
	winner := ind.Clone()
	return &Result{
		RunID:       ge.RunID,
		Status:      status,
		Generation:  ge.Generation,
		Passes:      ge.Generation + 1,
		Index:       index,
		Individual:  winner,
		Complement:  winner.Complement(),
		Evaluation:  ge.Evaluator.Evaluate(winner),
		FromStaging: fromStaging,
	}
}
