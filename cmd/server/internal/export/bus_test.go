package export

import (
	"log/slog"
	"testing"

	"github.com/meetscribe/export-server/cmd/server/internal/models"
)

func event(stage models.ExportStage, progress int) models.ExportProgress {
	return models.ExportProgress{ExportID: "exp-1", Stage: stage, Progress: progress}
}

func TestBusPublishOrder(t *testing.T) {
	bus := NewBus(slog.Default())

	var order []string
	bus.Subscribe(func(models.ExportProgress) { order = append(order, "first") })
	bus.Subscribe(func(models.ExportProgress) { order = append(order, "second") })
	bus.Subscribe(func(models.ExportProgress) { order = append(order, "third") })

	bus.Publish(event(models.StagePreparing, 10))

	if len(order) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(order))
	}
	if order[0] != "first" || order[1] != "second" || order[2] != "third" {
		t.Fatalf("subscribers invoked out of order: %v", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(slog.Default())

	var a, b int
	unsubA := bus.Subscribe(func(models.ExportProgress) { a++ })
	bus.Subscribe(func(models.ExportProgress) { b++ })

	bus.Publish(event(models.StagePreparing, 10))
	unsubA()
	bus.Publish(event(models.StageGenerating, 30))

	if a != 1 {
		t.Fatalf("unsubscribed callback still invoked: a=%d", a)
	}
	if b != 2 {
		t.Fatalf("remaining subscriber should see both events: b=%d", b)
	}

	// unsubscribing twice is a no-op
	unsubA()
	bus.Publish(event(models.StageComplete, 100))
	if a != 1 || b != 3 {
		t.Fatalf("double unsubscribe misbehaved: a=%d b=%d", a, b)
	}
}

func TestBusNoReplayForLateSubscribers(t *testing.T) {
	bus := NewBus(slog.Default())
	bus.Publish(event(models.StageComplete, 100))

	var seen int
	bus.Subscribe(func(models.ExportProgress) { seen++ })
	if seen != 0 {
		t.Fatalf("late subscriber must not receive past events, got %d", seen)
	}
}

func TestBusPanickingSubscriberIsIsolated(t *testing.T) {
	bus := NewBus(slog.Default())

	var after int
	bus.Subscribe(func(models.ExportProgress) { panic("listener bug") })
	bus.Subscribe(func(models.ExportProgress) { after++ })

	bus.Publish(event(models.StageGenerating, 30))
	bus.Publish(event(models.StageComplete, 100))

	if after != 2 {
		t.Fatalf("subscribers after a panicking one must keep receiving events, got %d", after)
	}
	if bus.SubscriberCount() != 2 {
		t.Fatalf("panicking subscriber should stay registered, count=%d", bus.SubscriberCount())
	}
}
