// Package relay forwards control-plane watch events to a single
// outbound connection. One subscription is opened per resource kind,
// each drained in its own goroutine, so a busy kind cannot starve the
// others; a single writer serializes the frames.
package relay

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"k8s.io/apimachinery/pkg/watch"

	"github.com/kubeovn/console/pkg/api"
)

// Subscriber opens a watch subscription for one resource kind.
type Subscriber interface {
	Watch(ctx context.Context, plural string) (watch.Interface, error)
}

// Relay fans events from a set of resource subscriptions into one sink.
type Relay struct {
	subscriber Subscriber
	resources  []string
	logger     log.Logger
}

func New(subscriber Subscriber, resources []string, logger log.Logger) *Relay {
	return &Relay{
		subscriber: subscriber,
		resources:  resources,
		logger:     logger,
	}
}

// Run subscribes to every resource and forwards each event to sink as a
// JSON frame, one frame per Write. It blocks until ctx is cancelled, a
// subscription ends, or a write fails; in every case all subscriptions
// are stopped before it returns. There is no reconnection: the caller
// owns the connection lifecycle and a failed relay is a closed
// connection.
func (r *Relay) Run(ctx context.Context, sink io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)

	events := make(chan api.Event)
	closed := make(chan string, len(r.resources))
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	for _, plural := range r.resources {
		sub, err := r.subscriber.Watch(ctx, plural)
		if err != nil {
			return errors.Wrapf(err, "subscribing to %s", plural)
		}
		wg.Add(1)
		go func(plural string, sub watch.Interface) {
			defer wg.Done()
			defer sub.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-sub.ResultChan():
					if !ok {
						// The remote ended the stream; take the whole
						// relay down rather than serve a partial view.
						closed <- plural
						return
					}
					select {
					case events <- api.Event{Resource: plural, Type: string(ev.Type), Object: ev.Object}:
					case <-ctx.Done():
						return
					}
				}
			}
		}(plural, sub)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case plural := <-closed:
			return errors.Errorf("watch stream for %s closed", plural)
		case ev := <-events:
			frame, err := json.Marshal(ev)
			if err != nil {
				return errors.Wrapf(err, "encoding %s event", ev.Resource)
			}
			if _, err := sink.Write(frame); err != nil {
				return errors.Wrap(err, "writing event")
			}
		}
	}
}
