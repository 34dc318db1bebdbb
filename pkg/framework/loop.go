package framework

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Loop drives a Stepper in batches at a fixed wall-clock interval.
// A simulated clock domain runs much faster than any sane timer
// resolution, so each iteration advances the Stepper by StepRate
// scaled to the elapsed interval instead of one step per tick.
type Loop struct {
	// Interval is the wall-clock pacing of iterations.
	Interval time.Duration
	// StepRate is the number of steps per second of wall time.
	StepRate int

	stepper Stepper
}

// NewLoop creates a Loop for a Stepper.
func NewLoop(stepper Stepper) *Loop {
	return &Loop{
		Interval: 10 * time.Millisecond,
		StepRate: 1000000,
		stepper:  stepper,
	}
}

// Run implements Runnable.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval == 0 {
		interval = 10 * time.Millisecond
	}
	steps := int(int64(l.StepRate) * int64(interval) / int64(time.Second))
	if steps <= 0 {
		steps = 1
	}
	glog.V(4).Infof("loop interval %v, %d steps per iteration", interval, steps)

	timer := time.Tick(interval)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer:
		}
		if err := l.stepper.Step(ctx, steps); err != nil {
			return err
		}
	}
}
