package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Notice{ID: "later", TriggerAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Notice{ID: "sooner", TriggerAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitNotice(t, engine.C(), time.Second)
	second := waitNotice(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineCancelRemovesPendingNotice(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Notice{ID: "cancelled", TriggerAt: now.Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule cancelled: %v", err)
	}
	if err := engine.Schedule(Notice{ID: "kept", TriggerAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule kept: %v", err)
	}

	engine.Cancel("cancelled")
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 pending after cancel, got %d", engine.Pending())
	}

	got := waitNotice(t, engine.C(), time.Second)
	if got.ID != "kept" {
		t.Fatalf("expected kept notice, got %s", got.ID)
	}
}

func TestEngineCancelIsIdempotent(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	if err := engine.Schedule(Notice{ID: "once", TriggerAt: time.Now().Add(10 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	got := waitNotice(t, engine.C(), time.Second)
	if got.ID != "once" {
		t.Fatalf("unexpected notice: %s", got.ID)
	}

	// Fired, unknown, and empty handles all cancel to a no-op.
	engine.Cancel("once")
	engine.Cancel("once")
	engine.Cancel("never-scheduled")
	engine.Cancel("")
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d pending", engine.Pending())
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Notice{ID: "n", TriggerAt: now}); err != nil {
			t.Fatalf("schedule notice: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped notices > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Notice{ID: "bad"}); err != ErrInvalidTriggerTime {
		t.Fatalf("expected ErrInvalidTriggerTime, got %v", err)
	}
}

func waitNotice(t *testing.T, ch <-chan Notice, timeout time.Duration) Notice {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for notice")
		return Notice{}
	}
}
