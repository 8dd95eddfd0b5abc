package fetch

import (
	"context"
	"sync"

	"epiview/domain/series"
	"epiview/internal"
)

// Status is the view-facing state of a dataset retrieval.
type Status int

const (
	// StatusLoading is the initial state and holds until the single fetch of
	// the current activation resolves.
	StatusLoading Status = iota
	// StatusError is terminal for the activation; there is no automatic retry.
	StatusError
	// StatusReady means the snapshot decoded successfully.
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "loading"
	}
}

// Snapshot is an immutable read of a view's state. Records is non-nil only
// when Status is StatusReady; Message is set only on StatusError.
type Snapshot struct {
	Status  Status
	Message string
	Records []series.CountryRecord
}

// View owns the raw dataset of one dashboard. Exactly one retrieval happens
// per activation; filter changes read the same snapshot and never refetch.
// Views are independent of each other: there is no cross-view cache.
type View struct {
	name   string
	url    string
	client *Client

	mu      sync.Mutex
	started bool
	gen     int
	state   Snapshot
}

// NewView creates a view in the loading state for the given data endpoint.
func NewView(name, url string, client *Client) *View {
	return &View{
		name:   name,
		url:    url,
		client: client,
		state:  Snapshot{Status: StatusLoading},
	}
}

// Name returns the dashboard name the view was created for.
func (v *View) Name() string { return v.name }

// Activate performs the activation's single fetch if it has not started yet.
// It blocks until this activation's state is resolved, so concurrent callers
// during warm-up all observe either error or ready afterwards. A result from
// a superseded activation never updates state.
func (v *View) Activate(ctx context.Context) {
	v.mu.Lock()
	if v.started {
		v.mu.Unlock()
		return
	}
	v.started = true
	gen := v.gen
	v.mu.Unlock()

	records, err := v.client.FetchRecords(ctx, v.url)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.gen != gen {
		// A Reset happened while this fetch was in flight; drop the result.
		internal.DefaultLogger.Debug("[fetch] discarding superseded result for %s", v.name)
		return
	}
	if err != nil {
		internal.DefaultLogger.Warn("[fetch] %s dataset failed: %v", v.name, err)
		v.state = Snapshot{Status: StatusError, Message: err.Error()}
		return
	}
	internal.DefaultLogger.Info("[fetch] %s dataset ready: %d countries", v.name, len(records))
	v.state = Snapshot{Status: StatusReady, Records: records}
}

// Snapshot returns the current state without side effects.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Reset begins a new activation: state returns to loading and any in-flight
// fetch from the previous activation is invalidated.
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.started = false
	v.state = Snapshot{Status: StatusLoading}
}
