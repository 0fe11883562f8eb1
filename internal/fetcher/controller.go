// Package fetcher runs skip fetch cycles for one location and exposes their
// outcome as a single consistent state.
package fetcher

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/skipsel/internal/catalog"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/models"
)

// ErrMsgUnexpected is used for failures that are not *catalog.APIError.
const ErrMsgUnexpected = "An unexpected error occurred"

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the controller. Skips holds the last successful
// listing and survives a later failure; Err is set only when Status is Failed.
type State struct {
	Status Status
	Skips  []models.Skip
	Err    string
}

// Fetcher is satisfied by *catalog.Client.
type Fetcher interface {
	FetchByLocation(ctx context.Context, params models.LocationParams) ([]models.Skip, error)
}

type Controller struct {
	fetcher Fetcher

	mu       sync.Mutex
	params   models.LocationParams
	state    State
	seq      uint64
	onChange []func(State)
}

type Option func(*Controller)

// OnChange registers an observer called after every state update, outside the lock.
func OnChange(fn func(State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.onChange = append(c.onChange, fn)
		}
	}
}

func New(f Fetcher, params models.LocationParams, opts ...Option) *Controller {
	c := &Controller{
		fetcher: f,
		params:  params,
		state:   State{Status: Idle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load runs the initial fetch cycle. It blocks until the cycle resolves.
func (c *Controller) Load(ctx context.Context) {
	c.run(ctx)
}

// Refetch re-runs a cycle for the current params. The cache is still
// consulted, so a refetch inside the TTL does not hit the network.
func (c *Controller) Refetch(ctx context.Context) {
	c.run(ctx)
}

// SetParams switches location and runs a cycle if params actually changed.
// It reports whether a cycle ran.
func (c *Controller) SetParams(ctx context.Context, params models.LocationParams) bool {
	c.mu.Lock()
	if c.params == params {
		c.mu.Unlock()
		return false
	}
	c.params = params
	c.mu.Unlock()

	c.run(ctx)
	return true
}

func (c *Controller) Params() models.LocationParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Skips() []models.Skip {
	return c.State().Skips
}

// Loading is true until the first cycle has resolved and while one is running.
func (c *Controller) Loading() bool {
	s := c.State().Status
	return s == Idle || s == Loading
}

func (c *Controller) Error() (string, bool) {
	s := c.State()
	return s.Err, s.Status == Failed
}

// run executes one cycle. Cycles are numbered; when a newer cycle has started
// before this one resolves, its result is dropped.
func (c *Controller) run(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	params := c.params
	c.state.Status = Loading
	c.state.Err = ""
	c.notifyLocked()

	skips, err := c.fetch(ctx, params)

	c.mu.Lock()
	if seq != c.seq {
		logger.Debug("dropping superseded fetch cycle %d (current %d)", seq, c.seq)
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.state.Status = Failed
		c.state.Err = errorMessage(err)
		logger.Debug("error fetching skips: %v", err)
	} else {
		c.state = State{Status: Loaded, Skips: skips}
	}
	c.notifyLocked()
}

func (c *Controller) fetch(ctx context.Context, params models.LocationParams) (skips []models.Skip, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("fetch cycle panicked: %v", r)
			skips, err = nil, errors.New(ErrMsgUnexpected)
		}
	}()
	return c.fetcher.FetchByLocation(ctx, params)
}

// notifyLocked releases c.mu and then calls observers with the new snapshot.
func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	observers := c.onChange
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.Skips = slices.Clone(s.Skips)
	return s
}

func errorMessage(err error) string {
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ErrMsgUnexpected
}
