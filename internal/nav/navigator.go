// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package nav

import (
	"slices"
	"sync"

	"micromatch/cli/internal/session"
)

// SessionSource is the part of session.Manager the Navigator needs.
type SessionSource interface {
	Current() session.State
	Subscribe(fn func(session.Event)) (cancel func())
}

// Navigator tracks the current view.
type Navigator struct {
	sessions SessionSource

	mu      sync.Mutex
	current View

	obsMu     sync.Mutex
	observers []func(View)
}

// NewNavigator starts on the view the session allows: home when
// authenticated, login otherwise.
func NewNavigator(sessions SessionSource) *Navigator {
	n := &Navigator{sessions: sessions, current: ViewLogin}
	if sessions.Current().Authenticated() {
		n.current = ViewHome
	}
	return n
}

// Current returns the view last navigated to.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Go moves to view, or to the guard's redirect if the view is protected and
// the session has no token. It returns the view actually shown.
func (n *Navigator) Go(view View) View {
	target := view
	if view.Protected() {
		if d := Check(n.sessions.Current()); !d.Allow {
			target = d.Redirect
		}
	}

	n.mu.Lock()
	n.current = target
	n.mu.Unlock()

	n.obsMu.Lock()
	observers := slices.Clone(n.observers)
	n.obsMu.Unlock()
	for _, fn := range observers {
		fn(target)
	}
	return target
}

// OnChange registers fn to run after every navigation.
func (n *Navigator) OnChange(fn func(View)) {
	n.obsMu.Lock()
	n.observers = append(n.observers, fn)
	n.obsMu.Unlock()
}

// Attach follows session events: login goes home, logout goes to login.
func (n *Navigator) Attach() (detach func()) {
	return n.sessions.Subscribe(func(ev session.Event) {
		switch ev.Kind {
		case session.LoggedIn:
			n.Go(ViewHome)
		case session.LoggedOut:
			n.Go(ViewLogin)
		}
	})
}
