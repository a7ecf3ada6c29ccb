package card_ga

import (
	"fmt"
	"io"
)

// TraceObserver writes the human readable round by round trace.
type TraceObserver struct {
	w         io.Writer
	evaluator *Evaluator
}

func NewTraceObserver(w io.Writer) *TraceObserver {
	return &TraceObserver{w: w, evaluator: NewEvaluator()}
}

func (t *TraceObserver) GenerationEvaluated(report *GenerationReport) {
	fmt.Fprintln(t.w, "==============================")
	fmt.Fprintf(t.w, "========== Round %2d ==========\n", report.Generation)
	for i, ind := range report.Individuals {
		t.writeIndividual(i, ind, report.Fitness[i])
	}
	fmt.Fprintf(t.w, "best %d  worst %d  mean %.2f  stddev %.2f\n\n",
		report.Metrics.Best, report.Metrics.Worst, report.Metrics.Mean, report.Metrics.StdDev)
}

func (t *TraceObserver) OffspringCreated(generation int, off *Offspring, parents [2]*Individual) {
	fmt.Fprintf(t.w, "**** Creating individual number %02d ****\n", off.Slot)
	fmt.Fprintln(t.w, "Parents:")
	t.writeIndividual(off.ParentA, parents[0], t.evaluator.Score(parents[0]))
	t.writeIndividual(off.ParentB, parents[1], t.evaluator.Score(parents[1]))
	fmt.Fprintf(t.w, "Location to split: %d\n", off.Split)
	if off.Mutation != nil {
		fmt.Fprintf(t.w, "Mutation was done (%s)\n", off.Mutation)
	}
	fmt.Fprint(t.w, "Recombined: ")
	t.writeIndividual(off.Slot, off.Individual, off.Evaluation.Score)
	fmt.Fprintln(t.w, "*****************************************")
}

func (t *TraceObserver) RunFinished(result *Result) {
	fmt.Fprint(t.w, "\n==============================\n\n")
	switch result.Status {
	case Won:
		fmt.Fprintf(t.w, "After %d tournaments, solution found.\n", result.Generation)
	default:
		fmt.Fprintf(t.w, "After %d tournaments, no solution reached %d; best individual follows.\n",
			result.Passes, result.Evaluation.Score)
	}
	fmt.Fprintf(t.w, "Product pile (should be %d) cards are: %s (product %d)\n",
		ProductTarget, joinCards(result.Individual.Genes), result.Evaluation.Product)
	fmt.Fprintf(t.w, "Sum pile (should be %d) cards are: %s (sum %d)\n",
		SumTarget, joinCards(result.Complement), result.Evaluation.Sum)
	fmt.Fprintf(t.w, "Evaluation: %d\n", result.Evaluation.Score)
}

func (t *TraceObserver) writeIndividual(i int, ind *Individual, score int) {
	prod := " " + joinCards(ind.Genes)
	sum := " " + joinCards(ind.Complement())
	fmt.Fprintf(t.w, "%02d - PROD: %-15s     SUM: %-15s    Evaluation: %d.\n", i, prod, sum, score)
}
