// Package session drives the post-setup session life-cycle: inactive until
// the armed hotkey fires, activated against the server, then toggling
// membership on every further press, with a background poll that notices
// server-side revocation. All state lives on the controller's goroutine;
// input sources and the poller reach it only through channels.
package session

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RE4CT-SC/388-Client/internal/hotkey"
	"github.com/RE4CT-SC/388-Client/internal/remote"
)

// DefaultPollInterval is how often the lead-status poll wakes.
const DefaultPollInterval = 15 * time.Second

// API is the remote boundary the controller needs; *remote.Client satisfies
// it and tests substitute fakes.
type API interface {
	Activate(ctx context.Context) (string, error)
	Trigger(ctx context.Context) (remote.Outcome, error)
	Deactivate(ctx context.Context) error
	Status(ctx context.Context) bool
}

type callResult struct {
	activation bool
	outcome    remote.Outcome
	err        error
}

// Controller owns the session state machine. Construct once per run with
// New, then Run on its own goroutine.
type Controller struct {
	api          API
	binding      hotkey.Token
	tokens       <-chan hotkey.Token
	pollInterval time.Duration

	results  chan callResult
	verdicts chan bool

	state      State
	stateAtom  atomic.Int32 // mirrors state for cross-goroutine reads
	inFlight   bool
	pollCancel context.CancelFunc
	pollDone   chan struct{}

	mu   sync.Mutex
	subs []chan Event
}

// Option adjusts controller construction.
type Option func(*Controller)

// WithPollInterval overrides the revocation poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

func New(api API, binding hotkey.Token, tokens <-chan hotkey.Token, opts ...Option) *Controller {
	c := &Controller{
		api:          api,
		binding:      binding,
		tokens:       tokens,
		pollInterval: DefaultPollInterval,
		results:      make(chan callResult, 1),
		verdicts:     make(chan bool, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State reports the current session state. Safe from any goroutine.
func (c *Controller) State() State {
	return State(c.stateAtom.Load())
}

// Subscribe registers a transition listener. Slow subscribers lose events
// rather than stalling the controller.
func (c *Controller) Subscribe() <-chan Event {
	ch := make(chan Event, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// Run processes tokens, call results, and poll verdicts until ctx is
// cancelled, then performs the best-effort deactivation if a session was
// live.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return
		case tok := <-c.tokens:
			c.handleToken(ctx, tok)
		case res := <-c.results:
			c.handleResult(ctx, res)
		case lead := <-c.verdicts:
			c.handleVerdict(lead)
		}
	}
}

func (c *Controller) handleToken(ctx context.Context, tok hotkey.Token) {
	if tok != c.binding {
		return
	}
	// The hotkey is disabled while a call is outstanding; at most one
	// session-mutating call is ever in flight.
	if c.inFlight {
		return
	}
	c.inFlight = true

	switch c.state {
	case Inactive:
		go func() {
			_, err := c.api.Activate(ctx)
			c.results <- callResult{activation: true, err: err}
		}()
	case Activated, InSession:
		go func() {
			outcome, err := c.api.Trigger(ctx)
			c.results <- callResult{outcome: outcome, err: err}
		}()
	}
}

func (c *Controller) handleResult(ctx context.Context, res callResult) {
	c.inFlight = false
	if res.activation {
		if res.err != nil {
			c.emit(EventActivationFailed, remote.Reason(res.err))
			return
		}
		c.setState(Activated)
		c.emit(EventActivated, "")
		c.startPoller(ctx)
		return
	}

	if res.err != nil {
		log.Printf("trigger failed: %v", res.err)
		c.emit(EventTriggerFailed, remote.Reason(res.err))
		return
	}
	switch c.state {
	case Activated:
		switch res.outcome {
		case remote.OutcomeStarted:
			c.setState(InSession)
			c.emit(EventEntered, "")
		case remote.OutcomeEnded:
			c.emit(EventLeft, "")
		}
	case InSession:
		if res.outcome == remote.OutcomeEnded {
			c.setState(Activated)
			c.emit(EventExited, "")
		}
	}
}

func (c *Controller) handleVerdict(lead bool) {
	if lead || c.state == Inactive {
		return
	}
	c.setState(Inactive)
	c.stopPoller()
	c.emit(EventRevoked, "Server revoked your Team-Lead role.")
}

// startPoller launches the background revocation poll. It terminates within
// one interval of a stop or of the state leaving {Activated, InSession}.
func (c *Controller) startPoller(ctx context.Context) {
	if c.pollCancel != nil {
		return
	}
	pctx, cancel := context.WithCancel(ctx)
	c.pollCancel = cancel
	c.pollDone = make(chan struct{})
	go func() {
		defer close(c.pollDone)
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-pctx.Done():
				return
			case <-ticker.C:
				lead := c.api.Status(pctx)
				select {
				case c.verdicts <- lead:
				case <-pctx.Done():
					return
				}
			}
		}
	}()
}

func (c *Controller) stopPoller() {
	if c.pollCancel == nil {
		return
	}
	c.pollCancel()
	c.pollCancel = nil
}

// shutdown fires the one-shot deactivation if the server still considers us
// active. Not retried, never surfaced.
func (c *Controller) shutdown() {
	c.stopPoller()
	if c.state == Activated || c.state == InSession {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		c.api.Deactivate(ctx)
	}
	c.setState(Inactive)
}

func (c *Controller) setState(s State) {
	c.state = s
	c.stateAtom.Store(int32(s))
}

func (c *Controller) emit(t EventType, reason string) {
	ev := Event{Type: t, State: c.state, Reason: reason, At: time.Now()}
	c.mu.Lock()
	subs := c.subs
	c.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
