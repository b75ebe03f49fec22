package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/kubeovn/console/pkg/api"
)

type fakeSubscriber struct {
	mu    sync.Mutex
	subs  map[string]*watch.FakeWatcher
	fails map[string]error
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{subs: map[string]*watch.FakeWatcher{}, fails: map[string]error{}}
}

func (f *fakeSubscriber) Watch(ctx context.Context, plural string) (watch.Interface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fails[plural]; err != nil {
		return nil, err
	}
	w := watch.NewFakeWithChanSize(10, false)
	f.subs[plural] = w
	return w, nil
}

func (f *fakeSubscriber) sub(plural string) *watch.FakeWatcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[plural]
}

// frameRecorder collects whole JSON frames, one per Write.
type frameRecorder struct {
	mu     sync.Mutex
	frames []api.Event
	err    error
}

func (r *frameRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	var ev api.Event
	if err := json.Unmarshal(p, &ev); err != nil {
		return 0, err
	}
	r.frames = append(r.frames, ev)
	return len(p), nil
}

func (r *frameRecorder) events() []api.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]api.Event(nil), r.frames...)
}

func obj(name string) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "kubeovn.io/v1",
		"kind":       "Subnet",
		"metadata":   map[string]interface{}{"name": name},
	}}
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestRunFansInAllResources(t *testing.T) {
	subscriber := newFakeSubscriber()
	sink := &frameRecorder{}
	r := New(subscriber, []string{"subnets", "vpcs"}, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, sink) }()

	eventually(t, func() bool { return subscriber.sub("subnets") != nil && subscriber.sub("vpcs") != nil },
		"subscriptions not opened")

	// A continuous stream on one kind must not block events from the
	// other.
	stop := make(chan struct{})
	busyDone := make(chan struct{})
	go func() {
		defer close(busyDone)
		for {
			select {
			case <-stop:
				return
			default:
				subscriber.sub("subnets").Add(obj("busy"))
				time.Sleep(time.Millisecond)
			}
		}
	}()
	subscriber.sub("vpcs").Modify(obj("quiet"))

	eventually(t, func() bool {
		for _, ev := range sink.events() {
			if ev.Resource == "vpcs" && ev.Type == "MODIFIED" {
				return true
			}
		}
		return false
	}, "event from quiet resource never forwarded")
	close(stop)
	<-busyDone

	cancel()
	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, errors.Cause(err))
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not stop on cancel")
	}

	eventually(t, func() bool {
		return subscriber.sub("subnets").IsStopped() && subscriber.sub("vpcs").IsStopped()
	}, "subscriptions not released after cancel")
}

func TestRunStopsOnWriteError(t *testing.T) {
	subscriber := newFakeSubscriber()
	sink := &frameRecorder{err: errors.New("connection gone")}
	r := New(subscriber, []string{"subnets"}, log.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background(), sink) }()

	eventually(t, func() bool { return subscriber.sub("subnets") != nil }, "subscription not opened")
	subscriber.sub("subnets").Add(obj("s1"))

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection gone")
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not stop on write error")
	}
	assert.True(t, subscriber.sub("subnets").IsStopped())
}

func TestRunStopsWhenStreamEnds(t *testing.T) {
	subscriber := newFakeSubscriber()
	r := New(subscriber, []string{"vlans"}, log.NewNopLogger())

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background(), &bytes.Buffer{}) }()

	eventually(t, func() bool { return subscriber.sub("vlans") != nil }, "subscription not opened")
	subscriber.sub("vlans").Stop()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "watch stream for vlans closed")
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not stop when the stream ended")
	}
}

func TestRunFailsIfSubscribeFails(t *testing.T) {
	subscriber := newFakeSubscriber()
	subscriber.fails["vpcs"] = errors.New("forbidden")
	r := New(subscriber, []string{"subnets", "vpcs"}, log.NewNopLogger())

	err := r.Run(context.Background(), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscribing to vpcs")
	// The subscription that did open must be released.
	eventually(t, func() bool { return subscriber.sub("subnets").IsStopped() }, "earlier subscription leaked")
}
