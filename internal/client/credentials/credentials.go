package credentials

import (
	"context"
	"errors"
)

// ErrStoreClosed is returned by stores whose backing resource was released.
var ErrStoreClosed = errors.New("credential store closed")

// Credentials is the persisted pair. An empty field means "not held".
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (c Credentials) HasAccess() bool  { return c.AccessToken != "" }
func (c Credentials) HasRefresh() bool { return c.RefreshToken != "" }
func (c Credentials) IsZero() bool     { return !c.HasAccess() && !c.HasRefresh() }

// Store is the single persisted credential slot.
type Store interface {
	// Load returns the current pair; an empty slot is the zero value, not an error.
	Load(ctx context.Context) (Credentials, error)
	// Save replaces the whole slot. Empty fields are removed, not kept.
	Save(ctx context.Context, c Credentials) error
	// Clear removes both credentials.
	Clear(ctx context.Context) error
}
