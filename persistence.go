package card_ga

import (
	"fmt"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	gorm "gorm.io/gorm"
)

const (
	HISTORY_PRAGMAS = "_pragma=journal_mode=MEMORY"
	HISTORY_OPTIONS = "mode=memory&cache=shared"
)

// RunRecord is one row per engine run.
type RunRecord struct {
	ID           string `gorm:"primaryKey"`
	Status       string
	Generation   int
	Passes       int
	Fitness      int
	ProductGroup string
	SumGroup     string
	CreatedAt    time.Time
	FinishedAt   *time.Time
}

// GenerationRecord is one row per evaluation pass.
type GenerationRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	Generation int
	Best       int
	Worst      int
	Mean       float64
	StdDev     float64
	Winners    int
	Offspring  int
	Mutations  int
}

// History is an Observer that keeps run and generation records in a private
// in-memory SQLite database. Nothing outlives Close.
type History struct {
	DB  *gorm.DB
	log *logrus.Entry
	err error

	current *GenerationRecord
}

func NewHistory(log *logrus.Entry) (*History, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	var path strings.Builder
	path.WriteString(fmt.Sprintf("file:history-%s?", uuid.NewString()))
	path.WriteString(HISTORY_PRAGMAS)
	path.WriteRune('&')
	path.WriteString(HISTORY_OPTIONS)

	db, err := gorm.Open(sqlite.Open(path.String()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("Failed to open history database: %w", err)
	}

	// Every pooled connection to a shared memory database sees the same
	// data, but one connection keeps writes strictly ordered.
	sqldb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("Failed to retrieve raw DB: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&RunRecord{}, &GenerationRecord{}); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("Failed to migrate history schema: %w", err)
	}

	return &History{DB: db, log: log.WithField("component", "history")}, nil
}

func (h *History) GenerationEvaluated(report *GenerationReport) {
	if h.err != nil {
		return
	}
	h.flush()
	if report.Generation == 0 {
		h.record(h.DB.Create(&RunRecord{ID: report.RunID, Status: Running.String()}).Error)
	}
	h.current = &GenerationRecord{
		RunID:      report.RunID,
		Generation: report.Generation,
		Best:       report.Metrics.Best,
		Worst:      report.Metrics.Worst,
		Mean:       report.Metrics.Mean,
		StdDev:     report.Metrics.StdDev,
		Winners:    report.Metrics.Winners,
	}
}

func (h *History) OffspringCreated(generation int, off *Offspring, parents [2]*Individual) {
	if h.current == nil || h.current.Generation != generation {
		return
	}
	h.current.Offspring++
	if off.Mutation != nil {
		h.current.Mutations++
	}
}

func (h *History) RunFinished(result *Result) {
	if h.err != nil {
		return
	}
	h.flush()
	now := time.Now()
	h.record(h.DB.Model(&RunRecord{ID: result.RunID}).Updates(map[string]interface{}{
		"status":        result.Status.String(),
		"generation":    result.Generation,
		"passes":        result.Passes,
		"fitness":       result.Evaluation.Score,
		"product_group": joinCards(result.Individual.Genes),
		"sum_group":     joinCards(result.Complement),
		"finished_at":   now,
	}).Error)
}

// Run loads the record of a finished or running run.
func (h *History) Run(runID string) (*RunRecord, error) {
	var run RunRecord
	if err := h.DB.First(&run, "id = ?", runID).Error; err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return &run, nil
}

// Generations returns the per pass records of a run in generation order.
func (h *History) Generations(runID string) ([]GenerationRecord, error) {
	var gens []GenerationRecord
	if err := h.DB.Where("run_id = ?", runID).Order("generation").Find(&gens).Error; err != nil {
		return nil, fmt.Errorf("failed to load generations for run %s: %w", runID, err)
	}
	return gens, nil
}

// Improvements returns only the passes where the best fitness went up.
func (h *History) Improvements(runID string) ([]GenerationRecord, error) {
	gens, err := h.Generations(runID)
	if err != nil {
		return nil, err
	}
	var out []GenerationRecord
	best := -1 << 31
	for _, g := range gens {
		if g.Best > best {
			out = append(out, g)
			best = g.Best
		}
	}
	return out, nil
}

// Err reports the first write failure. Observers cannot fail a run, so
// failures are held here.
func (h *History) Err() error {
	return h.err
}

func (h *History) Close() error {
	sqldb, err := h.DB.DB()
	if err != nil {
		return fmt.Errorf("Failed to retrieve raw DB: %w", err)
	}
	return sqldb.Close()
}

func (h *History) flush() {
	if h.current == nil {
		return
	}
	h.record(h.DB.Create(h.current).Error)
	h.current = nil
}

func (h *History) record(err error) {
	if err != nil && h.err == nil {
		h.err = err
		h.log.WithError(err).Error("Recording history failed, further records dropped")
	}
}
