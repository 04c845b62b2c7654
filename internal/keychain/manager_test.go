// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
)

func newTestStore() (*Store, *keyring.ArrayKeyring) {
	ring := keyring.NewArrayKeyring(nil)
	return NewStore(ring), ring
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		identity string
	}{
		{name: "jwt and email", token: "eyJhbGciOiJIUzI1NiJ9.e30.sig", identity: "a@b.com"},
		{name: "opaque token", token: "tok123", identity: "student@uni.edu"},
		{name: "whitespace kept verbatim", token: " tok ", identity: "x@y.z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore()
			if err := s.Save(tt.token, tt.identity); err != nil {
				t.Fatalf("Save: %v", err)
			}
			token, identity, err := s.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if token != tt.token || identity != tt.identity {
				t.Errorf("Load() = (%q, %q), want (%q, %q)", token, identity, tt.token, tt.identity)
			}

			if err := s.Clear(); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			token, identity, err = s.Load()
			if err != nil {
				t.Fatalf("Load after Clear: %v", err)
			}
			if token != "" || identity != "" {
				t.Errorf("Load() after Clear = (%q, %q), want empty", token, identity)
			}
		})
	}
}

func TestLoadNeverWritten(t *testing.T) {
	s, _ := newTestStore()
	token, identity, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if token != "" || identity != "" {
		t.Errorf("Load() = (%q, %q), want empty", token, identity)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s, _ := newTestStore()
	for i := 0; i < 2; i++ {
		if err := s.Clear(); err != nil {
			t.Fatalf("Clear #%d: %v", i+1, err)
		}
	}
}

func TestLoadTornPair(t *testing.T) {
	s, ring := newTestStore()
	if err := ring.Set(keyring.Item{Key: KeyToken, Data: []byte("tok")}); err != nil {
		t.Fatal(err)
	}

	token, identity, err := s.Load()
	if !errors.Is(err, ErrTornPair) {
		t.Fatalf("Load() err = %v, want ErrTornPair", err)
	}
	if token != "" || identity != "" {
		t.Errorf("Load() = (%q, %q), want empty", token, identity)
	}
}

// failingRing fails writes of one key.
type failingRing struct {
	*keyring.ArrayKeyring
	failKey string
}

func (f *failingRing) Set(item keyring.Item) error {
	if item.Key == f.failKey {
		return errors.New("keychain locked")
	}
	return f.ArrayKeyring.Set(item)
}

func TestSaveRollsBackOnPartialFailure(t *testing.T) {
	ring := &failingRing{ArrayKeyring: keyring.NewArrayKeyring(nil), failKey: KeyIdentity}
	s := NewStore(ring)

	if err := s.Save("tok", "a@b.com"); err == nil {
		t.Fatal("Save() err = nil, want failure")
	}
	if _, err := ring.Get(KeyToken); !errors.Is(err, keyring.ErrKeyNotFound) {
		t.Errorf("token left behind after failed Save: err = %v", err)
	}
	token, identity, err := s.Load()
	if err != nil || token != "" || identity != "" {
		t.Errorf("Load() = (%q, %q, %v), want empty pair", token, identity, err)
	}
}

func TestFailedOverwriteKeepsPreviousPair(t *testing.T) {
	ring := &failingRing{ArrayKeyring: keyring.NewArrayKeyring(nil)}
	s := NewStore(ring)
	if err := s.Save("tokA", "a@x.com"); err != nil {
		t.Fatal(err)
	}

	ring.failKey = KeyIdentity
	if err := s.Save("tokB", "b@x.com"); err == nil {
		t.Fatal("Save() err = nil, want failure")
	}

	token, identity, err := s.Load()
	if err != nil || token != "tokA" || identity != "a@x.com" {
		t.Errorf("Load() = (%q, %q, %v), want previous pair", token, identity, err)
	}
}

func TestAllowedBackendsEndWithFile(t *testing.T) {
	for _, goos := range []string{"darwin", "windows", "linux", "freebsd"} {
		backends := allowedBackends(goos)
		if len(backends) == 0 {
			t.Fatalf("%s: no backends", goos)
		}
		if last := backends[len(backends)-1]; last != keyring.FileBackend {
			t.Errorf("%s: last backend = %q, want file", goos, last)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Save("abc", "a@b.com"); err != nil {
		t.Fatal(err)
	}
	token, identity, err := s.Load()
	if err != nil || token != "abc" || identity != "a@b.com" {
		t.Errorf("Load() = %q, %q, %v", token, identity, err)
	}
}
