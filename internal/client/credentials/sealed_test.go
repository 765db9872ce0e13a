package credentials

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealedStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{})
	s := NewSealedStore(inner, []byte("passphrase"))

	require.NoError(t, s.Save(ctx, Credentials{AccessToken: "a1", RefreshToken: "r1"}))

	raw, err := inner.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", raw.AccessToken)
	assert.NotEqual(t, "r1", raw.RefreshToken)

	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessToken: "a1", RefreshToken: "r1"}, c)
}

func TestSealedStore_OtherProcessSamePassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{})

	require.NoError(t, NewSealedStore(inner, []byte("pw")).Save(ctx, Credentials{AccessToken: "a", RefreshToken: "r"}))

	c, err := NewSealedStore(inner, []byte("pw")).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "r", c.RefreshToken)
}

func TestSealedStore_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{})

	require.NoError(t, NewSealedStore(inner, []byte("right")).Save(ctx, Credentials{AccessToken: "a", RefreshToken: "r"}))

	_, err := NewSealedStore(inner, []byte("wrong")).Load(ctx)
	require.ErrorIs(t, err, ErrWrongPassphrase)
	require.ErrorContains(t, err, "unseal refresh credential")
}

func TestSealedStore_TamperedCiphertext(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{})
	s := NewSealedStore(inner, []byte("pw"))
	require.NoError(t, s.Save(ctx, Credentials{AccessToken: "a", RefreshToken: "r"}))

	stored, err := inner.Load(ctx)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(stored.RefreshToken)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, inner.Save(ctx, Credentials{AccessToken: "a", RefreshToken: base64.StdEncoding.EncodeToString(raw)}))

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWrongPassphrase)
}

func TestSealedStore_Malformed(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{AccessToken: "a", RefreshToken: base64.StdEncoding.EncodeToString([]byte("short"))})

	_, err := NewSealedStore(inner, []byte("pw")).Load(ctx)
	require.ErrorIs(t, err, cryptox.ErrMalformedSealed)
}

func TestSealedStore_NoRefreshPassesThrough(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore(Credentials{})
	s := NewSealedStore(inner, []byte("pw"))

	require.NoError(t, s.Save(ctx, Credentials{AccessToken: "a"}))
	c, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Credentials{AccessToken: "a"}, c)

	require.NoError(t, s.Clear(ctx))
	c, err = inner.Load(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsZero())
}
