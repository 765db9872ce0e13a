package credentials

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/cryptox"
)

// ErrWrongPassphrase means the refresh credential was sealed under another
// passphrase.
var ErrWrongPassphrase = errors.New("credential passphrase does not match")

// SealedStore encrypts the refresh credential before it reaches the inner
// store. The stored form is base64(salt || verifier || nonce || ciphertext);
// the verifier fingerprints the key so a wrong passphrase is told apart from
// a corrupted value. The key is
// derived from the passphrase and the salt with argon2id and cached, since
// derivation costs 64 MiB and Load runs on every gateway call.
type SealedStore struct {
	inner      Store
	passphrase []byte

	mu   sync.Mutex
	salt []byte
	key  []byte
}

func NewSealedStore(inner Store, passphrase []byte) *SealedStore {
	return &SealedStore{inner: inner, passphrase: bytes.Clone(passphrase)}
}

func (s *SealedStore) Load(ctx context.Context) (Credentials, error) {
	c, err := s.inner.Load(ctx)
	if err != nil {
		return Credentials{}, err
	}
	if c.RefreshToken == "" {
		return c, nil
	}

	raw, err := base64.StdEncoding.DecodeString(c.RefreshToken)
	if err != nil || len(raw) <= cryptox.SaltSize+cryptox.VerifierSize {
		return Credentials{}, fmt.Errorf("unseal refresh credential: %w", cryptox.ErrMalformedSealed)
	}
	salt := raw[:cryptox.SaltSize]
	verifier := raw[cryptox.SaltSize : cryptox.SaltSize+cryptox.VerifierSize]
	sealed := raw[cryptox.SaltSize+cryptox.VerifierSize:]

	key := s.keyFor(salt)
	if subtle.ConstantTimeCompare(verifier, cryptox.MakeVerifier(key)) != 1 {
		return Credentials{}, fmt.Errorf("unseal refresh credential: %w", ErrWrongPassphrase)
	}
	plain, err := cryptox.Open(key, sealed)
	if err != nil {
		return Credentials{}, fmt.Errorf("unseal refresh credential: %w", err)
	}
	c.RefreshToken = string(plain)
	return c, nil
}

func (s *SealedStore) Save(ctx context.Context, c Credentials) error {
	if c.RefreshToken != "" {
		salt, key := s.currentKey()
		sealed, err := cryptox.Seal(key, []byte(c.RefreshToken))
		if err != nil {
			return fmt.Errorf("seal refresh credential: %w", err)
		}
		raw := make([]byte, 0, len(salt)+cryptox.VerifierSize+len(sealed))
		raw = append(raw, salt...)
		raw = append(raw, cryptox.MakeVerifier(key)...)
		raw = append(raw, sealed...)
		c.RefreshToken = base64.StdEncoding.EncodeToString(raw)
	}
	return s.inner.Save(ctx, c)
}

func (s *SealedStore) Clear(ctx context.Context) error {
	return s.inner.Clear(ctx)
}

func (s *SealedStore) currentKey() (salt, key []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil {
		s.salt = common.GenerateRandByteArray(cryptox.SaltSize)
		s.key = cryptox.DeriveMasterKey(s.passphrase, s.salt)
	}
	return s.salt, s.key
}

func (s *SealedStore) keyFor(salt []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == nil || !bytes.Equal(s.salt, salt) {
		s.salt = bytes.Clone(salt)
		s.key = cryptox.DeriveMasterKey(s.passphrase, s.salt)
	}
	return s.key
}
