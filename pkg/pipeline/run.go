package pipeline

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Run status values.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RunFilename is the run record file name inside the workspace.
const RunFilename = "run.json"

// Run records one pipeline invocation: which sections were committed and
// whether the run reached the cover letter. Useful for inspecting what a
// crashed or failed run left behind, since commits are write-through.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Sections    []string   `json:"sections_committed"`
	Error       string     `json:"error,omitempty"`
}

// newRun creates a running record.
func newRun() (run *Run) {
	run = &Run{
		ID:        uuid.New(),
		Status:    StatusRunning,
		StartedAt: time.Now(),
		Sections:  make([]string, 0),
	}
	return run
}

// finish stamps a terminal status.
func (r *Run) finish(status string, runErr error) {
	now := time.Now()
	r.Status = status
	r.CompletedAt = &now
	if runErr != nil {
		r.Error = runErr.Error()
	}
}

// save writes the run record to disk.
func (r *Run) save(path string) (err error) {
	var data []byte
	data, err = json.MarshalIndent(r, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal run record")
		return err
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		err = errors.Wrapf(err, "failed to write run record: %s", path)
		return err
	}

	return err
}
