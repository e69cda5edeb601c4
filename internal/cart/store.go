package cart

import (
	"context"
	"errors"

	"github.com/sevasanjeevani/store/internal/domain"
)

// SessionStore keeps the per-user cart for the lifetime of a session.
// Persistence beyond that is the store's concern, not the aggregate's.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}

var ErrCartNotFound = errors.New("cart not found")
