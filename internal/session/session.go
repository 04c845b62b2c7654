// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the process-wide authentication state.
//
// A Manager is created once at startup from the credential store and is then
// handed to every component that needs to read the session. It can only be
// changed through Login and Logout, and every change is announced to
// subscribers once it is visible to readers. Navigation on login/logout is
// done by a subscriber, not by the Manager itself.
//
// The locally held token is trusted as-is: there is no expiry check and no
// server-side revalidation. A revoked token stays "authenticated" until a
// request made with it fails.
package session

import (
	"errors"
	"slices"
	"sync"

	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/logging"

	"github.com/pterm/pterm"
)

// ErrInvalidCredentials is returned by Login when token or identity is empty.
var ErrInvalidCredentials = errors.New("token and identity are required")

// Store is the durable copy of the session. *keychain.Store implements it.
type Store interface {
	Save(token, identity string) error
	Load() (token, identity string, err error)
	Clear() error
}

// State is an immutable snapshot of the session.
// Token and Identity are either both set or both empty.
type State struct {
	Token    string
	Identity string
}

// Authenticated reports whether a token is held.
func (s State) Authenticated() bool {
	return s.Token != ""
}

// EventKind distinguishes session transitions.
type EventKind int

const (
	// LoggedIn is emitted after a successful Login.
	LoggedIn EventKind = iota + 1
	// LoggedOut is emitted after every Logout, even when nothing was held.
	LoggedOut
)

func (k EventKind) String() string {
	switch k {
	case LoggedIn:
		return "logged_in"
	case LoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// Event describes a completed transition.
type Event struct {
	Kind EventKind
	// State is the session after the transition.
	State State
	// Previous is the session before the transition.
	Previous State
}

// TokenChanged reports whether the transition replaced the token.
func (e Event) TokenChanged() bool {
	return e.State.Token != e.Previous.Token
}

// Manager owns the authentication state.
type Manager struct {
	// mu serializes mutations and guards state and subs.
	mu    sync.RWMutex
	store Store
	state State
	subs  map[int]func(Event)
	next  int
	// notifyMu keeps listener delivery in mutation order.
	notifyMu sync.Mutex
	log      *pterm.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *pterm.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New initializes the session from the store. If the store holds a token
// the Manager starts authenticated. Any load failure is treated as
// "no session" and never returned; it is logged at debug level.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		subs:  make(map[int]func(Event)),
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}

	token, identity, err := store.Load()
	switch {
	case err != nil:
		m.log.Debug("no usable stored session", m.log.Args("error", logging.Mask(err.Error())))
	case token != "" && identity != "":
		m.state = State{Token: token, Identity: identity}
		m.log.Debug("restored session", m.log.Args("identity", identity, "token", logging.MaskToken(token)))
	default:
		m.log.Debug("no stored session")
	}
	return m
}

// Current returns the present session snapshot.
func (m *Manager) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the current token, or "" when unauthenticated.
func (m *Manager) Token() string {
	return m.Current().Token
}

// Login replaces the session with the given credential. The token is not
// validated here; the caller must have obtained it from the backend.
// The pair is persisted before it becomes visible, so a persistence failure
// leaves the session unchanged.
func (m *Manager) Login(token, identity string) error {
	if token == "" || identity == "" {
		return ErrInvalidCredentials
	}

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if err := m.store.Save(token, identity); err != nil {
		m.mu.Unlock()
		return apperr.Wrap(apperr.Credential, "save session", err)
	}
	prev := m.state
	m.state = State{Token: token, Identity: identity}
	ev := Event{Kind: LoggedIn, State: m.state, Previous: prev}
	m.mu.Unlock()

	m.log.Debug("session started", m.log.Args("identity", identity))
	m.emit(ev)
	return nil
}

// Logout clears the session. The in-memory state is cleared before the
// store so that any reader after Logout returns sees it unauthenticated,
// even when clearing the store fails. Calling Logout while unauthenticated
// only re-emits the LoggedOut event.
func (m *Manager) Logout() error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	prev := m.state
	m.state = State{}
	err := m.store.Clear()
	ev := Event{Kind: LoggedOut, Previous: prev}
	m.mu.Unlock()

	if err != nil {
		m.log.Warn("could not clear stored session", m.log.Args("error", err.Error()))
		err = apperr.Wrap(apperr.Credential, "clear session", err)
	}
	m.log.Debug("session ended", m.log.Args("identity", prev.Identity))
	m.emit(ev)
	return err
}

// Subscribe registers fn for every subsequent transition and returns a
// function that removes it. Listeners run synchronously, in registration
// order, on the goroutine that performed the transition; they may read
// the Manager but must not call Login or Logout.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}

func (m *Manager) emit(ev Event) {
	m.mu.RLock()
	ids := make([]int, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	m.mu.RUnlock()
	slices.Sort(ids)

	for _, id := range ids {
		m.mu.RLock()
		fn, ok := m.subs[id]
		m.mu.RUnlock()
		if ok {
			fn(ev)
		}
	}
}
