package types

// Outcome is the terminal state of one file after execution.
type Outcome string

const (
	OutcomePending Outcome = "pending" // planned but not performed (dry run)
	OutcomeMoved   Outcome = "moved"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// MoveOperation records the result of one attempted move. The ordered
// list of operations with OutcomeMoved is exactly the content of the
// undo journal.
type MoveOperation struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Outcome     Outcome `json:"outcome"`
	Error       string  `json:"error,omitempty"`
}
