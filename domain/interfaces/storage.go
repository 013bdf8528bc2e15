package interfaces

import (
	"context"

	"fretebot/domain/entities"
)

// SessionStore persists serialized browser session state keyed by
// portal account. Implementations must replace the stored blob whole on
// Save and return a nil state (not an error) when no session exists.
type SessionStore interface {
	// Load returns the saved state for the account, or nil when none.
	Load(ctx context.Context, account string) (entities.SessionState, error)

	// Save stores the state for the account, replacing any previous one.
	Save(ctx context.Context, account string, state entities.SessionState) error

	// Delete removes the saved state. Deleting a missing state is not an
	// error.
	Delete(ctx context.Context, account string) error
}
