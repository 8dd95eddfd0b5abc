package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStatesAroundActivation(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	view := NewView("measles", srv.URL, NewClient(5*time.Second))

	snap := view.Snapshot()
	assert.Equal(t, StatusLoading, snap.Status, "initial state must be loading")
	assert.Nil(t, snap.Records)

	view.Activate(context.Background())
	snap = view.Snapshot()
	require.Equal(t, StatusReady, snap.Status)
	assert.Len(t, snap.Records, 2)

	// Filter changes reuse the snapshot: re-activation never refetches.
	view.Activate(context.Background())
	view.Activate(context.Background())
	assert.Equal(t, int32(1), hits.Load())
}

func TestViewErrorIsTerminal(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	view := NewView("malaria", srv.URL, NewClient(5*time.Second))
	view.Activate(context.Background())

	snap := view.Snapshot()
	require.Equal(t, StatusError, snap.Status)
	assert.NotEmpty(t, snap.Message)

	// No automatic retry for this activation.
	view.Activate(context.Background())
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, StatusError, view.Snapshot().Status)
}

func TestViewResetStartsNewActivation(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	view := NewView("aids", srv.URL, NewClient(5*time.Second))
	view.Activate(context.Background())
	require.Equal(t, StatusReady, view.Snapshot().Status)

	view.Reset()
	assert.Equal(t, StatusLoading, view.Snapshot().Status)

	view.Activate(context.Background())
	assert.Equal(t, StatusReady, view.Snapshot().Status)
	assert.Equal(t, int32(2), hits.Load())
}

func TestViewSupersededFetchNeverUpdatesState(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(sampleBody))
	}))
	defer srv.Close()

	view := NewView("measles", srv.URL, NewClient(5*time.Second))

	done := make(chan struct{})
	go func() {
		view.Activate(context.Background())
		close(done)
	}()

	// Supersede the in-flight activation, then let the slow fetch finish.
	time.Sleep(50 * time.Millisecond)
	view.Reset()
	close(release)
	<-done

	// The stale result must not have flipped the fresh activation out of loading.
	assert.Equal(t, StatusLoading, view.Snapshot().Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "ready", StatusReady.String())
}
