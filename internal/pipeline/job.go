// Package pipeline orchestrates the debloat workflow for single files and
// batches.
package pipeline

import (
	"github.com/google/uuid"
)

// Job identifies one unit of work. Immutable once created.
type Job struct {
	ID         string
	FilePath   string
	Model      string
	Prompt     string // prompt identifier or literal prompt text
	ExportPath string // empty means replace the original in place
}

// NewJob creates a job with a short id for log correlation.
func NewJob(filePath, model, promptIDOrText, exportPath string) Job {
	return Job{
		ID:         uuid.New().String()[:8],
		FilePath:   filePath,
		Model:      model,
		Prompt:     promptIDOrText,
		ExportPath: exportPath,
	}
}
