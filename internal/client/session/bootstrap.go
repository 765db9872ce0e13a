package session

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/client/credentials"
)

// FromStore builds the start-up state: logged in iff the store holds any
// credential. The gateway sorts out whether it still works.
func FromStore(ctx context.Context, store credentials.Store) (*State, error) {
	c, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsZero() {
		return New(StatusLoggedOut), nil
	}
	return New(StatusLoggedIn), nil
}
