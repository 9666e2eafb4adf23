package client

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token identifies one outstanding request so it can be canceled.
type Token string

// NewToken returns a fresh random token.
func NewToken() Token {
	return Token(uuid.NewString())
}

type tokenKey struct{}

// WithToken attaches tok to ctx. The next request made with the returned
// context registers under tok instead of a generated token.
func WithToken(ctx context.Context, tok Token) context.Context {
	return context.WithValue(ctx, tokenKey{}, tok)
}

func tokenFrom(ctx context.Context) (Token, bool) {
	tok, ok := ctx.Value(tokenKey{}).(Token)
	return tok, ok && tok != ""
}

type inflight struct {
	endpoint string
	started  time.Time
	cancel   context.CancelFunc
}

// Tracker records outstanding requests and their cancel functions.
type Tracker struct {
	mu       sync.Mutex
	inflight map[Token]inflight
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[Token]inflight)}
}

// begin derives a request context bounded by timeout and registers it. The
// returned func must be called when the request completes.
func (t *Tracker) begin(ctx context.Context, endpoint string, timeout time.Duration) (context.Context, Token, func()) {
	tok, ok := tokenFrom(ctx)
	if !ok {
		tok = NewToken()
	}

	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	t.mu.Lock()
	t.inflight[tok] = inflight{endpoint: endpoint, started: time.Now(), cancel: cancel}
	t.mu.Unlock()

	return ctx, tok, func() {
		t.mu.Lock()
		delete(t.inflight, tok)
		t.mu.Unlock()
		cancel()
	}
}

// Cancel cancels the request registered under tok. It reports whether such
// a request was outstanding.
func (t *Tracker) Cancel(tok Token) bool {
	t.mu.Lock()
	req, ok := t.inflight[tok]
	t.mu.Unlock()
	if ok {
		req.cancel()
	}
	return ok
}

// CancelAll cancels every outstanding request and returns how many there were.
func (t *Tracker) CancelAll() int {
	t.mu.Lock()
	reqs := make([]inflight, 0, len(t.inflight))
	for _, req := range t.inflight {
		reqs = append(reqs, req)
	}
	t.mu.Unlock()

	for _, req := range reqs {
		req.cancel()
	}
	return len(reqs)
}

// Pending describes one outstanding request.
type Pending struct {
	Token    Token
	Endpoint string
	Started  time.Time
}

// Pending returns the outstanding requests, oldest first.
func (t *Tracker) Pending() []Pending {
	t.mu.Lock()
	out := make([]Pending, 0, len(t.inflight))
	for tok, req := range t.inflight {
		out = append(out, Pending{Token: tok, Endpoint: req.endpoint, Started: req.started})
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
