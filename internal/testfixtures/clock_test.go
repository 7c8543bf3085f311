package testfixtures

import (
	"testing"
	"time"
)

func TestClockDefaultsToReferenceTime(t *testing.T) {
	clock := NewClock(time.Time{})
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected ReferenceTime, got %v", clock.Current())
	}
	if !clock.Now().Equal(ReferenceTime()) {
		t.Fatal("frozen clock must not move between readings")
	}
}

func TestClockAdvanceAndSet(t *testing.T) {
	start := time.Date(2024, time.March, 14, 9, 26, 0, 0, time.UTC)
	clock := NewClock(start)

	updated := clock.Advance(90 * time.Minute)
	if !updated.Equal(start.Add(90 * time.Minute)) {
		t.Fatalf("advance returned %v", updated)
	}

	clock.Set(start.Add(2 * time.Hour))
	if got := clock.Current(); !got.Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("expected %v, got %v", start.Add(2*time.Hour), got)
	}
	if got := clock.Today(); got != "2024-03-14" {
		t.Fatalf("expected 2024-03-14, got %q", got)
	}
}

func TestSteppingClock(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	clock := NewSteppingClock(start, time.Second)
	nowFn := clock.NowFunc()

	first, second := nowFn(), nowFn()
	if !first.Equal(start) || !second.Equal(start.Add(time.Second)) {
		t.Fatalf("unexpected readings %v, %v", first, second)
	}
	if !clock.Current().Equal(start.Add(2 * time.Second)) {
		t.Fatalf("expected clock at +2s, got %v", clock.Current())
	}
}

func TestNilClockFallsBackToWallTime(t *testing.T) {
	var clock *Clock
	if got := clock.NowFunc()(); got.IsZero() {
		t.Fatal("expected wall time")
	}
}
