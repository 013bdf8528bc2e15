package entities

// Status is the terminal classification of an automation run.
type Status string

const (
	// StatusNotApplicable means the target row does not exist on the
	// grid, so there was nothing to act on.
	StatusNotApplicable Status = "not_applicable"
	// StatusProcessing means the portal has the request but has not
	// reached a final decision yet.
	StatusProcessing Status = "processing"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	// StatusTimedOut means monitoring stopped before the portal
	// published a final status.
	StatusTimedOut Status = "timed_out"
	StatusError    Status = "error"
)

// AutomationResult is the outcome of one portal operation.
//
// Message carries the technical detail for logs; UserMessage is the
// short text safe to show a dispatcher. NewSessionState is non-nil only
// when the run had to log in fresh, so the caller can persist it.
type AutomationResult struct {
	Success         bool         `json:"success"`
	Status          Status       `json:"status"`
	Message         string       `json:"message"`
	UserMessage     string       `json:"user_message,omitempty"`
	NewSessionState SessionState `json:"-"`
}
