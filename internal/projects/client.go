// Copyright (c) 2025 MicroMatch
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package projects retrieves the protected project listing and tracks the
// outcome of the latest attempt for the view that shows it.
package projects

import (
	"context"
	"errors"
	"sync"

	"micromatch/cli/internal/backend"
	apperr "micromatch/cli/internal/errors"
	"micromatch/cli/internal/logging"
	"micromatch/cli/internal/model"
	"micromatch/cli/internal/session"

	"github.com/pterm/pterm"
)

// Lister is the backend call the client depends on.
type Lister interface {
	ListProjects(ctx context.Context, accessToken string, q model.ProjectQuery) ([]model.Project, error)
}

// SessionSource is the part of session.Manager used by Mount.
type SessionSource interface {
	Current() session.State
	Subscribe(fn func(session.Event)) (cancel func())
}

// Client runs fetches and publishes their outcomes. When attempts overlap
// only the newest one may publish a terminal outcome; older responses are
// dropped.
type Client struct {
	lister Lister
	log    *pterm.Logger

	mu      sync.Mutex
	gen     uint64
	outcome Outcome

	// pubMu orders publication and guards subs.
	pubMu sync.Mutex
	subs  []func(Outcome)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient returns a Client in the Loading state.
func NewClient(lister Lister, opts ...Option) *Client {
	c := &Client{lister: lister, log: logging.Discard(), outcome: loading()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the last published outcome.
func (c *Client) Current() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Subscribe registers fn for every published outcome. Listeners run
// synchronously and must not call Fetch.
func (c *Client) Subscribe(fn func(Outcome)) {
	c.pubMu.Lock()
	c.subs = append(c.subs, fn)
	c.pubMu.Unlock()
}

// Fetch starts a new attempt with token. The previous outcome is replaced by
// Loading before the request is sent. The returned Outcome is this attempt's
// result; it is published only if no newer attempt started meanwhile.
func (c *Client) Fetch(ctx context.Context, token string, q model.ProjectQuery) Outcome {
	return c.run(ctx, c.begin(), token, q)
}

// begin claims the next generation and publishes Loading for it.
func (c *Client) begin() uint64 {
	c.pubMu.Lock()
	defer c.pubMu.Unlock()
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()
	c.publishLocked(gen, loading())
	return gen
}

func (c *Client) run(ctx context.Context, gen uint64, token string, q model.ProjectQuery) Outcome {
	items, err := c.lister.ListProjects(ctx, token, q)
	var out Outcome
	if err != nil {
		out = failed(messageFor(err))
		c.log.Debug("project fetch failed", c.log.Args("error", logging.Mask(err.Error())))
	} else {
		out = succeeded(items)
		c.log.Debug("project fetch succeeded", c.log.Args("count", len(out.Projects)))
	}

	c.pubMu.Lock()
	if !c.publishLocked(gen, out) {
		c.log.Debug("dropping superseded project fetch", c.log.Args("generation", gen))
	}
	c.pubMu.Unlock()
	return out
}

// publishLocked stores out if gen is still current, then notifies. pubMu
// must be held.
func (c *Client) publishLocked(gen uint64, out Outcome) bool {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return false
	}
	c.outcome = out
	c.mu.Unlock()

	for _, fn := range c.subs {
		fn(out)
	}
	return true
}

// Mount fetches with the current session token and fetches again each time
// the token changes, including to "" on logout, so a response obtained with
// a previous token is never published after the change. Fetches run in the
// background.
// The returned function stops following the session, cancels outstanding
// requests, and waits for them to return.
func (c *Client) Mount(ctx context.Context, sessions SessionSource, q model.ProjectQuery) (unmount func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	// The generation is claimed before the goroutine starts so attempts
	// are ordered by session event, not by scheduling.
	start := func(token string) {
		gen := c.begin()
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.run(ctx, gen, token, q)
		}()
	}

	var mountMu sync.Mutex
	stopped := false
	unsubscribe := sessions.Subscribe(func(ev session.Event) {
		if !ev.TokenChanged() {
			return
		}
		mountMu.Lock()
		defer mountMu.Unlock()
		if !stopped {
			start(ev.State.Token)
		}
	})

	mountMu.Lock()
	start(sessions.Current().Token)
	mountMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			unsubscribe()
			mountMu.Lock()
			stopped = true
			mountMu.Unlock()
			cancel()
			wg.Wait()
		})
	}
}

// messageFor turns a fetch error into the text shown to the user: the
// server detail or status text for HTTP failures, and the underlying
// transport error otherwise.
func messageFor(err error) string {
	var se *backend.StatusError
	if errors.As(err, &se) {
		return se.Message()
	}
	var e *apperr.E
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}
