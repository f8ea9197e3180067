package events

import (
	"context"
	"sync"
	"testing"

	"github.com/calloway/larder/internal/models"
)

type fakeAppender struct {
	mu     sync.Mutex
	events []models.PurchaseEvent
}

func (f *fakeAppender) AppendPurchaseEvent(ctx context.Context, ev *models.PurchaseEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeAppender) snapshot() []models.PurchaseEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PurchaseEvent(nil), f.events...)
}

func TestRecorderDeliversEvents(t *testing.T) {
	appender := &fakeAppender{}
	recorder := NewRecorder(appender)

	recorder.Record(models.PurchaseEvent{UserID: 1, ItemName: "milk", EventType: models.EventAdded})
	recorder.Record(models.PurchaseEvent{UserID: 1, ItemName: "bread", EventType: models.EventDeducted})

	// Close drains the queue before returning
	recorder.Close()

	events := appender.snapshot()
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].ItemName != "milk" || events[1].ItemName != "bread" {
		t.Errorf("events = [%q, %q], want [milk, bread]", events[0].ItemName, events[1].ItemName)
	}
}

func TestRecorderCloseIdempotent(t *testing.T) {
	recorder := NewRecorder(&fakeAppender{})
	recorder.Close()
	recorder.Close()
}
