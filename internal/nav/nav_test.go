// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package nav

import (
	"testing"

	"micromatch/cli/internal/keychain"
	"micromatch/cli/internal/session"

	"github.com/99designs/keyring"
)

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	return session.New(keychain.NewStore(keyring.NewArrayKeyring(nil)))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		state session.State
		want  Decision
	}{
		{name: "no token", state: session.State{}, want: Decision{Redirect: ViewLogin}},
		{name: "token", state: session.State{Token: "abc", Identity: "a@b.com"}, want: Decision{Allow: true}},
		{name: "stale token still allowed", state: session.State{Token: "expired", Identity: "a@b.com"}, want: Decision{Allow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(tt.state); got != tt.want {
				t.Errorf("Check() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestViewProtected(t *testing.T) {
	tests := []struct {
		view View
		want bool
	}{
		{ViewLogin, false},
		{ViewRegister, false},
		{ViewHome, true},
		{ViewProjects, true},
	}
	for _, tt := range tests {
		t.Run(tt.view.String(), func(t *testing.T) {
			if got := tt.view.Protected(); got != tt.want {
				t.Errorf("Protected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseView(t *testing.T) {
	for _, v := range []View{ViewLogin, ViewRegister, ViewHome, ViewProjects} {
		got, ok := ParseView(v.String())
		if !ok || got != v {
			t.Errorf("ParseView(%q) = %v, %v", v.String(), got, ok)
		}
	}
	if _, ok := ParseView("admin"); ok {
		t.Error("ParseView(admin) succeeded")
	}
}

func TestGoRedirectsWithoutSession(t *testing.T) {
	n := NewNavigator(newSessions(t))
	if n.Current() != ViewLogin {
		t.Fatalf("start view = %v, want login", n.Current())
	}
	if got := n.Go(ViewProjects); got != ViewLogin {
		t.Errorf("Go(projects) = %v, want login", got)
	}
	if got := n.Go(ViewRegister); got != ViewRegister {
		t.Errorf("Go(register) = %v, want register", got)
	}
}

func TestAttachFollowsSession(t *testing.T) {
	sessions := newSessions(t)
	n := NewNavigator(sessions)
	detach := n.Attach()
	defer detach()

	var shown []View
	n.OnChange(func(v View) { shown = append(shown, v) })

	if err := sessions.Login("tok123", "a@b.com"); err != nil {
		t.Fatal(err)
	}
	if n.Current() != ViewHome {
		t.Errorf("after login view = %v, want home", n.Current())
	}
	if got := n.Go(ViewProjects); got != ViewProjects {
		t.Errorf("Go(projects) = %v, want projects", got)
	}

	if err := sessions.Logout(); err != nil {
		t.Fatal(err)
	}
	if n.Current() != ViewLogin {
		t.Errorf("after logout view = %v, want login", n.Current())
	}
	// Guard sees the logout immediately.
	if got := n.Go(ViewHome); got != ViewLogin {
		t.Errorf("Go(home) after logout = %v, want login", got)
	}

	want := []View{ViewHome, ViewProjects, ViewLogin, ViewLogin}
	if len(shown) != len(want) {
		t.Fatalf("shown = %v, want %v", shown, want)
	}
	for i := range want {
		if shown[i] != want[i] {
			t.Fatalf("shown = %v, want %v", shown, want)
		}
	}
}

func TestStartsHomeWithRestoredSession(t *testing.T) {
	store := keychain.NewStore(keyring.NewArrayKeyring(nil))
	if err := store.Save("abc", "a@b.com"); err != nil {
		t.Fatal(err)
	}
	n := NewNavigator(session.New(store))
	if n.Current() != ViewHome {
		t.Errorf("start view = %v, want home", n.Current())
	}
}
