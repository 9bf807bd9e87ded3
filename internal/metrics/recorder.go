// Package metrics persists per-job results to an append-only CSV store and
// aggregates them for reporting.
package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Job status values recorded in the store.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Record is one row in the metrics store.
type Record struct {
	Timestamp        time.Time
	FileName         string
	Model            string
	PromptID         string
	LinesBefore      int
	LinesAfter       int
	ReductionPercent float64
	Status           string
}

var header = []string{
	"timestamp", "file_name", "model", "prompt_id",
	"lines_before", "lines_after", "reduction_percent", "status",
}

// Reduction computes the relative decrease in line count as a percentage.
// Zero lines before yields 0, not a division error.
func Reduction(before, after int) float64 {
	if before == 0 {
		return 0
	}
	return float64(before-after) / float64(before) * 100
}

// Recorder appends records to a CSV file. Appends are serialized so every
// row survives even when jobs run concurrently; existing rows are never
// reordered or rewritten.
type Recorder struct {
	mu   sync.Mutex
	path string
}

// NewRecorder creates a recorder for the given CSV path. The file is created
// on first append.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Path returns the store location.
func (r *Recorder) Path() string {
	return r.path
}

// Record appends one row, writing the header first if the store is new.
func (r *Recorder) Record(rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(r.path); os.IsNotExist(err) || (err == nil && info.Size() == 0) {
		writeHeader = true
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open metrics store: %w", err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write metrics header: %w", err)
		}
	}

	row := []string{
		rec.Timestamp.Format(time.RFC3339),
		rec.FileName,
		rec.Model,
		rec.PromptID,
		strconv.Itoa(rec.LinesBefore),
		strconv.Itoa(rec.LinesAfter),
		strconv.FormatFloat(rec.ReductionPercent, 'f', 2, 64),
		rec.Status,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write metrics row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush metrics row: %w", err)
	}
	return f.Sync()
}

// Load reads all records from the store in append order.
func (r *Recorder) Load() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open metrics store: %w", err)
	}
	defer f.Close() //nolint:errcheck

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse metrics store: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("metrics row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (Record, error) {
	if len(row) != len(header) {
		return Record{}, fmt.Errorf("has %d columns, expected %d", len(row), len(header))
	}

	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return Record{}, fmt.Errorf("timestamp: %w", err)
	}
	before, err := strconv.Atoi(row[4])
	if err != nil {
		return Record{}, fmt.Errorf("lines_before: %w", err)
	}
	after, err := strconv.Atoi(row[5])
	if err != nil {
		return Record{}, fmt.Errorf("lines_after: %w", err)
	}
	reduction, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return Record{}, fmt.Errorf("reduction_percent: %w", err)
	}

	return Record{
		Timestamp:        ts,
		FileName:         row[1],
		Model:            row[2],
		PromptID:         row[3],
		LinesBefore:      before,
		LinesAfter:       after,
		ReductionPercent: reduction,
		Status:           row[7],
	}, nil
}

// ModelSummary aggregates results for one model.
type ModelSummary struct {
	Model         string
	Jobs          int
	Succeeded     int
	MeanReduction float64
	BestReduction float64
	LinesRemoved  int
}

// Summarize aggregates records per model, ordered by mean reduction
// descending. Mean and best reduction only consider successful jobs.
func Summarize(records []Record) []ModelSummary {
	byModel := make(map[string]*ModelSummary)

	for _, rec := range records {
		s, ok := byModel[rec.Model]
		if !ok {
			s = &ModelSummary{Model: rec.Model}
			byModel[rec.Model] = s
		}
		s.Jobs++
		if rec.Status != StatusSuccess {
			continue
		}
		s.Succeeded++
		s.MeanReduction += rec.ReductionPercent
		if rec.ReductionPercent > s.BestReduction {
			s.BestReduction = rec.ReductionPercent
		}
		s.LinesRemoved += rec.LinesBefore - rec.LinesAfter
	}

	summaries := make([]ModelSummary, 0, len(byModel))
	for _, s := range byModel {
		if s.Succeeded > 0 {
			s.MeanReduction /= float64(s.Succeeded)
		}
		summaries = append(summaries, *s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].MeanReduction != summaries[j].MeanReduction {
			return summaries[i].MeanReduction > summaries[j].MeanReduction
		}
		return summaries[i].Model < summaries[j].Model
	})
	return summaries
}
