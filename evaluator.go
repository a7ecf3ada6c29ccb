package card_ga

// An Evaluation is a snapshot of how close an Individual comes to both
// targets. Score is what selection and the win check use; the rest is kept
// for observers.
type Evaluation struct {
	Product      int
	Sum          int
	ProductScore int
	SumScore     int
	Score        int
}

// Evaluator has no state. It exists so the engine and observers share one
// place that turns a genotype into an Evaluation.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Evaluate(ind *Individual) *Evaluation {
	eval := &Evaluation{
		Product: ind.Product(),
		Sum:     ind.Sum(),
	}
	eval.ProductScore = ProductScore(eval.Product)
	eval.SumScore = SumScore(eval.Sum)
	eval.Score = eval.ProductScore + eval.SumScore
	return eval
}

// Score is a shortcut for Evaluate(ind).Score.
func (e *Evaluator) Score(ind *Individual) int {
	return Fitness(ind.Genes)
}
