// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain persists the session credential in the OS keychain.
//
// The store holds exactly two values, the session token and the identity it
// was issued to, under fixed keys. Both are written and removed as a pair so
// that a reader never observes one without the other. Values are stored
// verbatim: there is no expiry or integrity check at this layer.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "micromatch"

// Keys used for storing the session in the OS keychain.
const (
	KeyToken    = "auth_token"
	KeyIdentity = "auth_identity"
)

// ErrTornPair reports that only one half of the credential pair was found.
var ErrTornPair = errors.New("stored credential is incomplete")

// Store provides thread-safe access to the persisted session credential.
type Store struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewStore wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func NewStore(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// NewMemoryStore returns a Store that lives only as long as the process.
func NewMemoryStore() *Store {
	return NewStore(keyring.NewArrayKeyring(nil))
}

// Open opens the platform keyring. fileDir is used by the encrypted file
// backend, which is the last resort when no native backend is available.
func Open(fileDir string) (*Store, error) {
	ring, err := keyring.Open(ringConfig(fileDir))
	if err != nil {
		return nil, err
	}
	return NewStore(ring), nil
}

func ringConfig(fileDir string) keyring.Config {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		AllowedBackends:          allowedBackends(runtime.GOOS),
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		LibSecretCollectionName:  ServiceName,
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(ServiceName),
	}
	// Hint prefixes where supported to minimize namespace collisions
	if runtime.GOOS == "windows" {
		cfg.WinCredPrefix = ServiceName
	}
	return cfg
}

// allowedBackends lists native backends first and the file backend last.
func allowedBackends(goos string) []keyring.BackendType {
	switch goos {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		}
	}
}

// Save stores the token and identity. If the identity cannot be written the
// previous token is put back (or the token removed when there was none), so
// a failed Save leaves whatever pair was stored before.
func (s *Store) Save(token, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, prevErr := s.ring.Get(KeyToken)
	if err := s.ring.Set(tokenItem([]byte(token))); err != nil {
		return err
	}
	if err := s.ring.Set(keyring.Item{Key: KeyIdentity, Data: []byte(identity), Label: ServiceName + " identity"}); err != nil {
		if prevErr == nil {
			_ = s.ring.Set(tokenItem(prev.Data))
		} else {
			_ = s.ring.Remove(KeyToken)
		}
		return err
	}
	return nil
}

func tokenItem(data []byte) keyring.Item {
	return keyring.Item{Key: KeyToken, Data: data, Label: ServiceName + " token"}
}

// Load returns the stored token and identity. Both are empty when nothing
// was saved or the store was cleared. A pair with a missing half yields
// empty values together with ErrTornPair.
func (s *Store) Load() (token, identity string, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err = s.get(KeyToken)
	if err != nil {
		return "", "", err
	}
	identity, err = s.get(KeyIdentity)
	if err != nil {
		return "", "", err
	}
	if (token == "") != (identity == "") {
		return "", "", ErrTornPair
	}
	return token, identity, nil
}

// Clear removes both values. Missing keys are not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{KeyToken, KeyIdentity} {
		if err := s.ring.Remove(key); err != nil && !isNotFound(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// get reads a key, mapping "not found" to an empty value.
func (s *Store) get(key string) (string, error) {
	it, err := s.ring.Get(key)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", err
	}
	return string(it.Data), nil
}

func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound)
}
