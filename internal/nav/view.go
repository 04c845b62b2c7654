// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package nav decides which view the client shows.
//
// The guard is a pure function of the session state. The Navigator applies it
// on every move into a protected view and follows session events, so a login
// lands on the home view and a logout returns to the login view.
package nav

import "fmt"

// View identifies a screen of the client.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewHome
	ViewProjects
)

var viewNames = map[View]string{
	ViewLogin:    "login",
	ViewRegister: "register",
	ViewHome:     "home",
	ViewProjects: "projects",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Protected reports whether the view requires an authenticated session.
func (v View) Protected() bool {
	return v == ViewHome || v == ViewProjects
}

// ParseView resolves a view by name.
func ParseView(name string) (View, bool) {
	for v, n := range viewNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}
