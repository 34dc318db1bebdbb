// Package station hosts an OLED controller wired to a simulated
// SH1107 device so commands can be exercised without hardware.
package station

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/veletron/oled.go/pkg/oled"
	"github.com/veletron/oled.go/pkg/sim"
)

// DefaultRefHz and DefaultSpeedHz mirror the target board: a 12MHz
// reference clock with the bus driven at 2MHz.
const (
	DefaultRefHz   = 12000000
	DefaultSpeedHz = 2000000
)

// execBudget caps the cycles a single command may take.  Clearing the
// screen moves a couple thousand bytes and stays well under this.
const execBudget = 8000000

// Station couples an OLED controller with a simulated device on a
// shared bus.  It is safe for concurrent use.
type Station struct {
	mu  sync.Mutex
	o   *oled.OLED
	dev *sim.Device
	h   *sim.Harness
}

// New creates a station clocked at refHz driving the bus at speedHz.
func New(refHz, speedHz int) (*Station, error) {
	o, err := oled.New(refHz, speedHz)
	if err != nil {
		return nil, err
	}
	dev := sim.NewDevice(oled.DefaultAddr)
	return &Station{o: o, dev: dev, h: sim.NewHarness(dev)}, nil
}

// Device exposes the simulated device for inspection.
func (s *Station) Device() *sim.Device {
	return s.dev
}

// Enqueue feeds command bytes to the controller without advancing it.
func (s *Station) Enqueue(b []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range b {
		if !s.o.Enqueue(c) {
			return fmt.Errorf("command queue full after %d bytes", i)
		}
	}
	return nil
}

// Step implements framework.Stepper and advances the simulation.
func (s *Station) Step(ctx context.Context, steps int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < steps; i++ {
		s.h.Step(s.o.Tick)
	}
	return ctx.Err()
}

// Exec enqueues a complete command and runs the simulation until the
// controller reports an outcome.
func (s *Station) Exec(cmd ...byte) (oled.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range cmd {
		if !s.o.Enqueue(c) {
			return oled.ResultFailure, fmt.Errorf("command queue full after %d bytes", i)
		}
	}
	done := s.h.RunUntil(s.o.Tick, func() bool {
		return s.o.Result() != oled.ResultBusy
	}, execBudget)
	if !done {
		return oled.ResultFailure, fmt.Errorf("command %#02x did not complete", cmd[0])
	}
	glog.V(4).Infof("command %#02x -> %d", cmd[0], s.o.Result())
	return s.o.Result(), nil
}

// Result reports the outcome of the most recent command.
func (s *Station) Result() oled.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.o.Result()
}

// Cursor reports the cursor position and visibility.
func (s *Station) Cursor() (row, col uint8, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.o.Row(), s.o.Col(), s.o.Cursor()
}
