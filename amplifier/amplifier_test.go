/*
DESCRIPTION
  amplifier_test.go provides testing of the amplifier lifecycle, using fake
  sources and displays.

AUTHORS
  The Australian Ocean Laboratory (AusOcean)

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package amplifier

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/device"
	"github.com/ausocean/motionamp/display"
	"github.com/ausocean/motionamp/filter"
)

// scenario returns a 4x4 three frame sequence where frame 2 raises pixel
// (1,2) by 100 and frame 3 repeats frame 1.
func scenario() []image.Image {
	f1 := uniform(4, 4, 20)
	return []image.Image{f1, withPixel(f1, 1, 2, 120), uniform(4, 4, 20)}
}

func TestNew(t *testing.T) {
	c := testConfig(t)
	c.StackSize = 1
	_, err := New(c, &fakeSource{}, newFakeDisplay())
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	c = testConfig(t)
	c.Logger = nil
	_, err = New(c, &fakeSource{}, newFakeDisplay())
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig without logger, got %v", err)
	}

	a, err := New(testConfig(t), &fakeSource{}, newFakeDisplay())
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if a.State() != Idle || a.Status() != statusIdle {
		t.Errorf("new amplifier in state %v with status %q", a.State(), a.Status())
	}
	select {
	case <-a.Done():
	default:
		t.Error("Done channel of an idle amplifier should be closed")
	}
}

func TestEndOfStream(t *testing.T) {
	src := &fakeSource{frames: scenario()}
	disp := newFakeDisplay()
	a, err := New(testConfig(t), src, disp)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	err = a.Start()
	if err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	a.Wait()

	want := [][][]uint8{
		{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 50, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 50, 0, 0},
			{0, 0, 0, 0},
		},
	}
	if !cmp.Equal(disp.frames, want) {
		t.Errorf("unexpected frames\ngot: %v\nwant: %v", disp.frames, want)
	}

	if a.State() != Idle {
		t.Errorf("expected Idle after end of stream, got %v", a.State())
	}
	if a.Status() != statusEndOfStream {
		t.Errorf("unexpected status %q", a.Status())
	}
	if a.Err() != nil {
		t.Errorf("end of stream should not be an error, got %v", a.Err())
	}
	if src.released() != 1 {
		t.Errorf("source released %d times, want 1", src.released())
	}
	if a.FramesShown() != 3 {
		t.Errorf("expected 3 frames shown, got %d", a.FramesShown())
	}
	st := a.Stats()
	if st.HistoryLength != 2 || st.MotionPixels != 1 {
		t.Errorf("unexpected stats for last frame: %+v", st)
	}
}

func TestFrameRate(t *testing.T) {
	tests := []struct {
		rate float64
		want []float64
	}{
		{rate: 0, want: []float64{54.1, 48.89, 44.201}},
		{rate: 25, want: []float64{22.6, 20.54, 18.686}},
	}

	for _, test := range tests {
		clk := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		steps := []time.Duration{time.Second, 500 * time.Millisecond, 500 * time.Millisecond}
		src := &fakeSource{
			frames: scenario(),
			rate:   test.rate,
			onRead: func(i int) { clk.Advance(steps[i]) },
		}
		disp := newFakeDisplay()

		a, err := New(testConfig(t), src, disp, WithClock(clk))
		if err != nil {
			t.Fatalf("did not expect error: %v", err)
		}
		err = a.Start()
		if err != nil {
			t.Fatalf("could not start amplifier: %v", err)
		}
		a.Wait()

		if len(disp.rates) != len(test.want) {
			t.Fatalf("got %d rates, want %d", len(disp.rates), len(test.want))
		}
		for i, want := range test.want {
			if math.Abs(disp.rates[i]-want) > 1e-9 {
				t.Errorf("source rate %v frame %d: got fps %v, want %v", test.rate, i, disp.rates[i], want)
			}
		}
	}
}

func TestStopMidRun(t *testing.T) {
	src := &fakeSource{gen: func(i int) image.Image { return uniform(8, 8, uint8(i)) }}
	disp := newFakeDisplay()
	a, err := New(testConfig(t), src, disp)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}

	for run := 1; run <= 2; run++ {
		err = a.Start()
		if err != nil {
			t.Fatalf("run %d: could not start amplifier: %v", run, err)
		}
		if !a.Running() {
			t.Fatalf("run %d: amplifier not running after start", run)
		}

		disp.waitFrames(t, run*5)
		a.Stop()

		if a.State() != Idle {
			t.Errorf("run %d: expected Idle after stop, got %v", run, a.State())
		}
		if a.Status() != statusStopped {
			t.Errorf("run %d: unexpected status %q", run, a.Status())
		}
		if src.released() != run {
			t.Errorf("run %d: source released %d times, want %d", run, src.released(), run)
		}
		if src.IsRunning() {
			t.Errorf("run %d: source still running after stop", run)
		}
	}

	// Stopping when idle has no effect.
	a.Stop()
	if src.released() != 2 {
		t.Errorf("source released %d times after idle stop, want 2", src.released())
	}
}

func TestStartWhileRunning(t *testing.T) {
	src := &fakeSource{gen: func(i int) image.Image { return uniform(4, 4, 0) }}
	disp := newFakeDisplay()
	a, _ := New(testConfig(t), src, disp)

	if err := a.Start(); err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Errorf("did not expect error from second start: %v", err)
	}
	disp.waitFrames(t, 1)
	a.Stop()

	if src.starts != 1 {
		t.Errorf("source opened %d times, want 1", src.starts)
	}
	if src.released() != 1 {
		t.Errorf("source released %d times, want 1", src.released())
	}
}

func TestRunErrors(t *testing.T) {
	errRead := errors.New("camera unplugged")
	errShow := errors.New("window closed")

	tests := []struct {
		name    string
		src     *fakeSource
		disp    *fakeDisplay
		status  string
		wantErr error
	}{
		{
			name:    "read",
			src:     &fakeSource{frames: scenario()[:2], err: errRead},
			disp:    newFakeDisplay(),
			status:  statusReadFailed,
			wantErr: errRead,
		},
		{
			name:    "invalid frame",
			src:     &fakeSource{frames: []image.Image{uniform(4, 4, 0), image.NewRGBA(image.Rect(0, 0, 0, 0))}},
			disp:    newFakeDisplay(),
			status:  statusBadFrame,
			wantErr: filter.ErrInvalidFrame,
		},
		{
			name:    "display",
			src:     &fakeSource{frames: scenario()},
			disp:    &fakeDisplay{err: errShow, shown: make(chan struct{}, 1)},
			status:  statusShowFailed,
			wantErr: errShow,
		},
	}

	for _, test := range tests {
		a, err := New(testConfig(t), test.src, test.disp)
		if err != nil {
			t.Fatalf("%s: did not expect error: %v", test.name, err)
		}
		err = a.Start()
		if err != nil {
			t.Fatalf("%s: could not start amplifier: %v", test.name, err)
		}
		a.Wait()

		if !errors.Is(a.Err(), test.wantErr) {
			t.Errorf("%s: expected error %v, got %v", test.name, test.wantErr, a.Err())
		}
		if !strings.HasPrefix(a.Status(), test.status) {
			t.Errorf("%s: status %q does not start with %q", test.name, a.Status(), test.status)
		}
		if a.State() != Idle {
			t.Errorf("%s: expected Idle, got %v", test.name, a.State())
		}
		if test.src.released() != 1 {
			t.Errorf("%s: source released %d times, want 1", test.name, test.src.released())
		}
	}
}

func TestOpenError(t *testing.T) {
	src := &fakeSource{openErr: errors.New("no camera")}
	a, _ := New(testConfig(t), src, newFakeDisplay())

	err := a.Start()
	if !errors.Is(err, device.ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
	if a.State() != Idle {
		t.Errorf("expected Idle after open failure, got %v", a.State())
	}
	if !strings.HasPrefix(a.Status(), statusOpenFailed) {
		t.Errorf("unexpected status %q", a.Status())
	}
	if src.released() != 0 {
		t.Errorf("unopened source released %d times", src.released())
	}
}

func TestQuit(t *testing.T) {
	src := &fakeSource{gen: func(i int) image.Image { return uniform(4, 4, 0) }}
	disp := newFakeDisplay()
	disp.quitAfter = 2
	a, _ := New(testConfig(t), src, disp)

	if err := a.Start(); err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	a.Wait()

	if a.Status() != statusQuit {
		t.Errorf("unexpected status %q", a.Status())
	}
	if a.FramesShown() != 2 {
		t.Errorf("expected 2 frames before quit, got %d", a.FramesShown())
	}
	if src.released() != 1 {
		t.Errorf("source released %d times, want 1", src.released())
	}
}

func TestQuitClearedOnStart(t *testing.T) {
	latest := display.NewLatest()
	latest.RequestQuit()

	src := &fakeSource{frames: scenario()}
	a, err := New(testConfig(t), src, latest)
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	a.Wait()

	if a.Status() != statusEndOfStream {
		t.Errorf("quit from a previous run ended this one: status %q", a.Status())
	}
	if a.FramesShown() != 3 {
		t.Errorf("expected 3 frames shown, got %d", a.FramesShown())
	}
}

func TestLiveParams(t *testing.T) {
	var a *Amplifier
	src := &fakeSource{frames: scenario()}
	src.onRead = func(i int) {
		if i != 2 {
			return
		}
		err := a.SetParams(filter.Params{Threshold: 10, Amplification: 2})
		if err != nil {
			t.Errorf("did not expect error: %v", err)
		}
	}
	disp := newFakeDisplay()
	a, _ = New(testConfig(t), src, disp)

	if err := a.Start(); err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	a.Wait()

	if got := disp.frames[1][2][1]; got != 50 {
		t.Errorf("frame 2: got %d, want 50", got)
	}
	if got := disp.frames[2][2][1]; got != 100 {
		t.Errorf("frame 3: got %d after doubling amplification, want 100", got)
	}
	if got := a.Config().Amplification; got != 2 {
		t.Errorf("config amplification not updated, got %v", got)
	}

	if err := a.SetParams(filter.Params{Amplification: 0}); !errors.Is(err, filter.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if got := a.Params().Amplification; got != 2 {
		t.Errorf("invalid params were applied, amplification %v", got)
	}
}

func TestUpdate(t *testing.T) {
	gen := func(i int) image.Image { return uniform(4, 4, uint8(i)) }
	src := &fakeSource{frames: []image.Image{gen(0), gen(1), gen(2), gen(3), gen(4)}}
	a, _ := New(testConfig(t), src, newFakeDisplay())

	run := func() filter.Stats {
		if err := a.Start(); err != nil {
			t.Fatalf("could not start amplifier: %v", err)
		}
		a.Wait()
		return a.Stats()
	}

	if got := run().HistoryLength; got != 2 {
		t.Errorf("expected history of 2, got %d", got)
	}

	err := a.Update(map[string]string{
		config.KeyStackSize:     "4",
		config.KeyThreshold:     "3",
		config.KeyAmplification: "5",
	})
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	want := filter.Params{Threshold: 3, Amplification: 5}
	if got := a.Params(); got != want {
		t.Errorf("got params %+v, want %+v", got, want)
	}
	if got := run().HistoryLength; got != 4 {
		t.Errorf("expected history of 4 after restart, got %d", got)
	}

	err = a.Update(map[string]string{config.KeyStackSize: "1", config.KeyThreshold: "7"})
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if got := a.Config(); got.StackSize != 4 || got.Threshold != 3 {
		t.Errorf("rejected update was applied: %+v", got)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		Idle:     "Idle",
		Running:  "Running",
		Stopping: "Stopping",
		State(7): "State(7)",
	} {
		if got := s.String(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestObserver(t *testing.T) {
	type obs struct {
		frame  uint64
		pixels int
	}
	var got []obs
	src := &fakeSource{frames: scenario()}
	a, err := New(testConfig(t), src, newFakeDisplay(), WithObserver(func(n uint64, st filter.Stats, fps float64) {
		got = append(got, obs{n, st.MotionPixels})
	}))
	if err != nil {
		t.Fatalf("did not expect error: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatalf("could not start amplifier: %v", err)
	}
	a.Wait()

	want := []obs{{1, 0}, {2, 1}, {3, 1}}
	if !cmp.Equal(got, want, cmp.AllowUnexported(obs{})) {
		t.Errorf("unexpected observations\ngot: %v\nwant: %v", got, want)
	}
}
