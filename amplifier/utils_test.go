/*
DESCRIPTION
  utils_test.go provides a logger and fakes of the amplifier's collaborators
  for testing.

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
	"image"
	"sync"
	"testing"
	"time"

	"github.com/ausocean/motionamp/amplifier/config"
	"github.com/ausocean/motionamp/device"
	"github.com/ausocean/utils/logging"
)

// testLogger will allow logging to be done by the testing pkg.
type testLogger testing.T

func (tl *testLogger) Debug(msg string, args ...interface{})   { tl.Log(logging.Debug, msg, args...) }
func (tl *testLogger) Info(msg string, args ...interface{})    { tl.Log(logging.Info, msg, args...) }
func (tl *testLogger) Warning(msg string, args ...interface{}) { tl.Log(logging.Warning, msg, args...) }
func (tl *testLogger) Error(msg string, args ...interface{})   { tl.Log(logging.Error, msg, args...) }
func (tl *testLogger) Fatal(msg string, args ...interface{})   { tl.Log(logging.Fatal, msg, args...) }
func (tl *testLogger) SetLevel(lvl int8)                       {}
func (dl *testLogger) Log(lvl int8, msg string, args ...interface{}) {
	var l string
	switch lvl {
	case logging.Warning:
		l = "warning"
	case logging.Debug:
		l = "debug"
	case logging.Info:
		l = "info"
	case logging.Error:
		l = "error"
	case logging.Fatal:
		l = "fatal"
	}
	msg = l + ": " + msg

	// Just use test.T.Log if no formatting required.
	if len(args) == 0 {
		((*testing.T)(dl)).Log(msg)
		return
	}

	// Add braces with args inside to message.
	msg += " ("
	for i := 0; i < len(args); i += 2 {
		msg += " %v:\"%v\""
	}
	msg += " )"

	if lvl == logging.Fatal {
		dl.Fatalf(msg+"\n", args...)
	}

	dl.Logf(msg+"\n", args...)
}

// testConfig returns a config that leaves frames unblurred and uses a fixed
// threshold, so that outputs are easy to predict.
func testConfig(t *testing.T) config.Config {
	c := config.Default((*testLogger)(t))
	c.StackSize = 2
	c.Threshold = 10
	c.Amplification = 1
	c.BlurRadius = 0
	c.AdaptiveThreshold = false
	return c
}

// fakeSource is a FrameSource that yields frames from a slice, or from gen
// when frames is nil. Once the frames are used up it returns err, or
// device.ErrEndOfStream if err is nil.
type fakeSource struct {
	mu      sync.Mutex
	frames  []image.Image
	gen     func(i int) image.Image
	err     error
	openErr error
	rate    float64

	// onRead is called before each frame is returned, with the frame index.
	onRead func(i int)

	i       int
	running bool
	starts  int
	stops   int
}

func (s *fakeSource) Name() string              { return "fake" }
func (s *fakeSource) Set(c config.Config) error { return nil }

func (s *fakeSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return s.openErr
	}
	s.i = 0
	s.starts++
	s.running = true
	return nil
}

func (s *fakeSource) Read() (image.Image, error) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil, device.ErrNotRunning
	}
	i := s.i
	var img image.Image
	switch {
	case s.frames == nil && s.gen != nil:
		img = s.gen(i)
	case i < len(s.frames):
		img = s.frames[i]
	case s.err != nil:
		s.mu.Unlock()
		return nil, s.err
	default:
		s.mu.Unlock()
		return nil, device.ErrEndOfStream
	}
	s.i++
	onRead := s.onRead
	s.mu.Unlock()

	if onRead != nil {
		onRead(i)
	}
	return img, nil
}

func (s *fakeSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.stops++
	return nil
}

func (s *fakeSource) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *fakeSource) FPS() float64 { return s.rate }

func (s *fakeSource) released() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stops
}

// fakeDisplay records the red channel of each frame shown and the frame
// rate it was shown with.
type fakeDisplay struct {
	mu        sync.Mutex
	frames    [][][]uint8
	rates     []float64
	quitAfter int
	err       error
	shown     chan struct{}
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{shown: make(chan struct{}, 1024)}
}

func (d *fakeDisplay) Show(img image.Image, fps float64) error {
	if d.err != nil {
		return d.err
	}
	rgba := img.(*image.RGBA)
	b := rgba.Bounds()
	plane := make([][]uint8, b.Dy())
	for y := range plane {
		plane[y] = make([]uint8, b.Dx())
		for x := range plane[y] {
			plane[y][x] = rgba.RGBAAt(b.Min.X+x, b.Min.Y+y).R
		}
	}

	d.mu.Lock()
	d.frames = append(d.frames, plane)
	d.rates = append(d.rates, fps)
	d.mu.Unlock()
	select {
	case d.shown <- struct{}{}:
	default:
	}
	return nil
}

func (d *fakeDisplay) Quit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quitAfter > 0 && len(d.frames) >= d.quitAfter
}

func (d *fakeDisplay) Close() error { return nil }

func (d *fakeDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// waitFrames waits until n frames have been shown.
func (d *fakeDisplay) waitFrames(t *testing.T, n int) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for d.count() < n {
		select {
		case <-d.shown:
		case <-timeout:
			t.Fatalf("timed out waiting for %d frames, got %d", n, d.count())
		}
	}
}

// stepClock is a clock advanced by hand.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// uniform returns a w by h grey image with every pixel set to v.
func uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// withPixel returns a copy of img with the pixel at (x, y) set to v.
func withPixel(img *image.Gray, x, y int, v uint8) *image.Gray {
	c := image.NewGray(img.Rect)
	copy(c.Pix, img.Pix)
	c.Pix[c.PixOffset(x, y)] = v
	return c
}
