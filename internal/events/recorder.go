// Package events records purchase-event history as a fire-and-forget
// side effect: failures are logged, never surfaced, and a slow store
// never blocks the request that triggered the event.
package events

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/calloway/larder/internal/models"
)

// Appender persists one purchase event
type Appender interface {
	AppendPurchaseEvent(ctx context.Context, ev *models.PurchaseEvent) error
}

const (
	queueSize     = 256
	appendTimeout = 5 * time.Second
)

// Recorder accepts events on a buffered channel and drains them in a
// single background goroutine
type Recorder struct {
	appender Appender
	ch       chan models.PurchaseEvent
	wg       sync.WaitGroup
	once     sync.Once
}

// NewRecorder starts the background drain loop
func NewRecorder(appender Appender) *Recorder {
	r := &Recorder{
		appender: appender,
		ch:       make(chan models.PurchaseEvent, queueSize),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Record submits an event without blocking. When the queue is full the
// event is dropped and logged; history is advisory, requests are not.
func (r *Recorder) Record(ev models.PurchaseEvent) {
	select {
	case r.ch <- ev:
	default:
		log.Printf("Warning: purchase event queue full, dropping event for %q", ev.ItemName)
	}
}

func (r *Recorder) run() {
	defer r.wg.Done()
	for ev := range r.ch {
		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		if err := r.appender.AppendPurchaseEvent(ctx, &ev); err != nil {
			log.Printf("Warning: failed to append purchase event for %q: %v", ev.ItemName, err)
		}
		cancel()
	}
}

// Close drains remaining events and stops the recorder
func (r *Recorder) Close() {
	r.once.Do(func() {
		close(r.ch)
	})
	r.wg.Wait()
}
