package framework

import "context"

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// RunFunc is the func form of Runnable.
type RunFunc func(context.Context) error

// Run implements Runnable.
func (f RunFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Stepper advances a discrete simulation by a number of steps.
type Stepper interface {
	Step(ctx context.Context, steps int) error
}

// StepFunc is the func form of Stepper.
type StepFunc func(ctx context.Context, steps int) error

// Step implements Stepper.
func (f StepFunc) Step(ctx context.Context, steps int) error {
	return f(ctx, steps)
}
