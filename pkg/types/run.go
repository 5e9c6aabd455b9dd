package types

import (
	"errors"
	"time"
)

// Run outcomes.
const (
	RunStateComplete  = "complete"
	RunStateExhausted = "exhausted"
)

// ErrInvalidRunState is returned when a Run carries an unknown state.
var ErrInvalidRunState = errors.New("invalid run state")

// Run is one completed or abandoned generation as reported by the CLI and
// kept in the run history.
type Run struct {
	RunID      string    `json:"run_id"`     // UUID v7, assigned when recorded.
	Seed       uint64    `json:"seed"`       // Seed that reproduces this run.
	Dictionary string    `json:"dictionary"` // Word list path.
	Words      []string  `json:"words"`      // Placed words in commit order.
	Attempts   int       `json:"attempts"`   // Candidate picks after seeding.
	State      string    `json:"state"`      // One of the RunState constants.
	Board      string    `json:"board"`      // Rendered grid.
	ElapsedMS  int64     `json:"elapsed_ms"` // Wall time of the generation.
	CreatedAt  time.Time `json:"created_at"` // Set when recorded.
}

// Validate checks the fields the history store relies on.
func (r Run) Validate() error {
	switch r.State {
	case RunStateComplete, RunStateExhausted:
		return nil
	default:
		return ErrInvalidRunState
	}
}
