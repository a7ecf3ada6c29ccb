package card_ga

// GenerationReport is handed to observers after every evaluation pass.
// Individuals and Fitness are copies; observers may keep them.
type GenerationReport struct {
	RunID       string
	Generation  int
	Individuals []*Individual
	Fitness     []int
	Metrics     GenerationMetrics
}

// Result is the outcome of a run. Individual is the winner when Status is
// Won, otherwise the best of the last evaluated generation.
type Result struct {
	RunID       string
	Status      Status
	Generation  int
	Passes      int
	Index       int
	Individual  *Individual
	Complement  []int
	Evaluation  *Evaluation
	FromStaging bool
}

// Observer receives the state produced by the engine. Implementations must
// not modify what they are given.
type Observer interface {
	GenerationEvaluated(report *GenerationReport)
	OffspringCreated(generation int, off *Offspring, parents [2]*Individual)
	RunFinished(result *Result)
}

func newGenerationReport(runID string, generation int, p *Population, winScore int) *GenerationReport {
	report := &GenerationReport{
		RunID:       runID,
		Generation:  generation,
		Individuals: make([]*Individual, len(p.Current)),
		Fitness:     make([]int, len(p.Fitness)),
		Metrics:     NewGenerationMetrics(p.Fitness, winScore),
	}
	for i, ind := range p.Current {
		report.Individuals[i] = ind.Clone()
	}
	copy(report.Fitness, p.Fitness)
	return report
}
