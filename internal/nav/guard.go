// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

package nav

import "micromatch/cli/internal/session"

// Decision is the result of a guard check.
type Decision struct {
	Allow    bool
	Redirect View // meaningful only when Allow is false
}

// Check gates a protected view on the presence of a token. It does not call
// the server and caches nothing; a stale token is allowed through.
func Check(state session.State) Decision {
	if state.Token != "" {
		return Decision{Allow: true}
	}
	return Decision{Redirect: ViewLogin}
}
