package port

import (
	"context"
	"errors"

	"github.com/rl1809/kaos-order/internal/core/domain"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	// Load returns the form of a session, or ErrSessionNotFound
	Load(ctx context.Context, sessionID string) (*domain.OrderForm, error)

	// Save stores the form and refreshes the session expiry
	Save(ctx context.Context, sessionID string, form *domain.OrderForm) error

	// Delete discards the session; deleting a missing session is not an error
	Delete(ctx context.Context, sessionID string) error

	// Claim marks the session as submitted, returns false if it already was
	Claim(ctx context.Context, sessionID string) (bool, error)
}
