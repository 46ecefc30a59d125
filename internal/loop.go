package internal

import (
	"context"
	"time"
)

const (
	fpsWindow          = 10
	AutoRotateInterval = 30 * time.Millisecond
	AutoRotateStep     = 0.01 // Yaw radians per interval
	maxCatchUpSteps    = 10   // After a long stall, do not spin the molecule around
)

// FrameClock measures the frame rate as a rolling average of the last instantaneous samples.
type FrameClock struct {
	last    time.Time
	samples [fpsWindow]float64
	n, next int
}

// Tick records a frame at now and returns the updated average FPS.
func (c *FrameClock) Tick(now time.Time) float64 {
	if !c.last.IsZero() {
		if dt := now.Sub(c.last).Seconds(); dt > 0 {
			c.samples[c.next] = 1 / dt
			c.next = (c.next + 1) % fpsWindow
			if c.n < fpsWindow {
				c.n++
			}
		}
	}
	c.last = now
	return c.FPS()
}

// FPS is the current average, 0 until two frames were seen.
func (c *FrameClock) FPS() float64 {
	if c.n == 0 {
		return 0
	}
	sum := 0.
	for i := 0; i < c.n; i++ {
		sum += c.samples[i]
	}
	return sum / float64(c.n)
}

// AutoRotator advances the yaw on its own fixed interval, independent of the frame rate.
type AutoRotator struct {
	last time.Time
}

// Advance applies every interval elapsed since the previous call and returns how many were applied.
func (a *AutoRotator) Advance(cam *CameraState, now time.Time) int {
	if !cam.AutoRotate {
		a.last = time.Time{}
		return 0
	}
	if a.last.IsZero() {
		a.last = now
		return 0
	}
	steps := int(now.Sub(a.last) / AutoRotateInterval)
	if steps <= 0 {
		return 0
	}
	if steps > maxCatchUpSteps {
		steps = maxCatchUpSteps
		a.last = now
	} else {
		a.last = a.last.Add(time.Duration(steps) * AutoRotateInterval)
	}
	cam.Rotation.Y += AutoRotateStep * float64(steps)
	return steps
}

// Loop drives a headless host: frames on every refresh signal, rotation on a private ticker.
type Loop struct {
	Frame  func(now time.Time)
	Rotate func(now time.Time)
}

// Run blocks until ctx is done (returning its error) or refresh is closed (returning nil).
// Both callbacks run on the calling goroutine.
func (l *Loop) Run(ctx context.Context, refresh <-chan time.Time) error {
	ticker := time.NewTicker(AutoRotateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-refresh:
			if !ok {
				return nil
			}
			if l.Frame != nil {
				l.Frame(now)
			}
		case now := <-ticker.C:
			if l.Rotate != nil {
				l.Rotate(now)
			}
		}
	}
}
