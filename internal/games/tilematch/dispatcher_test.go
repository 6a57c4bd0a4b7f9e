package tilematch

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

func newTestDispatcher(t *testing.T, levels []core.Level, tick time.Duration) *Dispatcher {
	t.Helper()
	s, err := core.NewSession(levels, rand.New(rand.NewPCG(7, 11)), core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	cfg := DefaultDispatcherConfig()
	cfg.TickInterval = tick
	d := NewDispatcher(s, cfg, nil)
	t.Cleanup(d.Stop)
	return d
}

func TestDispatcherSubmit(t *testing.T) {
	d := newTestDispatcher(t, core.DefaultLevels(), 0)
	d.Start()

	snap, err := d.Submit(context.Background(), core.SelectCell(2, 3))
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if snap.Selected == nil || *snap.Selected != core.At(2, 3) {
		t.Errorf("Selected = %v, want (2,3)", snap.Selected)
	}
	if got := d.Snapshot(); got.Selected == nil {
		t.Error("Snapshot() should reflect the last intent")
	}

	_, err = d.Submit(context.Background(), core.SelectCell(-1, 0))
	if !errors.Is(err, core.ErrInvalidCoordinate) {
		t.Errorf("error = %v, want ErrInvalidCoordinate", err)
	}
}

func TestDispatcherSerializesConcurrentIntents(t *testing.T) {
	lvl := core.Level{TargetScore: 1000, MaxMoves: 1000, TimeLimit: 1000}
	d := newTestDispatcher(t, []core.Level{lvl}, 0)
	d.Start()

	const workers, each = 8, 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				if _, err := d.Submit(context.Background(), core.TickTimer()); err != nil {
					t.Errorf("Submit() failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := d.Snapshot().TimeRemaining; got != 1000-workers*each {
		t.Errorf("TimeRemaining = %d, want %d", got, 1000-workers*each)
	}
}

func TestDispatcherTimer(t *testing.T) {
	lvl := core.Level{TargetScore: 1000, MaxMoves: 1000, TimeLimit: 1000}
	d := newTestDispatcher(t, []core.Level{lvl}, 5*time.Millisecond)
	d.Start()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case snap := <-d.Updates():
			if snap.TimeRemaining < 1000 {
				return
			}
		case <-timeout:
			t.Fatal("timer never ticked")
		}
	}
}

func TestDispatcherTimerRespectsPause(t *testing.T) {
	lvl := core.Level{TargetScore: 1000, MaxMoves: 1000, TimeLimit: 1000}
	d := newTestDispatcher(t, []core.Level{lvl}, 2*time.Millisecond)
	d.Start()

	snap, err := d.Submit(context.Background(), core.TogglePause())
	if err != nil || !snap.Paused {
		t.Fatalf("pause failed: paused=%v err=%v", snap.Paused, err)
	}
	before := snap.TimeRemaining

	time.Sleep(30 * time.Millisecond)
	if got := d.Snapshot().TimeRemaining; got != before {
		t.Errorf("timer ran while paused: %d -> %d", before, got)
	}
}

func TestDispatcherStop(t *testing.T) {
	d := newTestDispatcher(t, core.DefaultLevels(), 0)
	d.Start()
	d.Stop()
	d.Stop()

	_, err := d.Submit(context.Background(), core.TickTimer())
	if !errors.Is(err, ErrStopped) {
		t.Errorf("error = %v, want ErrStopped", err)
	}
	select {
	case <-d.Done():
	default:
		t.Error("Done() should be closed after Stop()")
	}
}

func TestDispatcherStopWithoutStart(t *testing.T) {
	d := newTestDispatcher(t, core.DefaultLevels(), 0)
	d.Stop()

	if _, err := d.Submit(context.Background(), core.TickTimer()); !errors.Is(err, ErrStopped) {
		t.Errorf("error = %v, want ErrStopped", err)
	}
}

func TestDispatcherSubmitContext(t *testing.T) {
	// Not started: the request is queued but never answered.
	d := newTestDispatcher(t, core.DefaultLevels(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := d.Submit(ctx, core.TickTimer())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if snap.Rows() != 8 {
		t.Error("a valid snapshot should come back with the error")
	}
}
