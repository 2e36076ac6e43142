package apprunner

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Runner is any long-lived component of the app: Start blocks until
// the component finishes, Stop asks it to finish.
type Runner interface {
	Start() error
	Stop()
}

type RunnerWithName struct {
	Runner
	name string
}

func NewRunner(name string, runner Runner) RunnerWithName {
	return RunnerWithName{
		Runner: runner,
		name:   name,
	}
}

// StartApp runs all runners concurrently and stops the rest as soon as
// the context is cancelled or any runner fails.
func StartApp(ctx context.Context, runners ...RunnerWithName) error {
	wg := sync.WaitGroup{}

	errs := []error{}
	errCh := make(chan error, len(runners))

	for _, runner := range runners {
		runner := runner
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := runner.Start(); err != nil {
				errCh <- fmt.Errorf("%s: %w", runner.name, err)
			}
		}()
	}

	done := make(chan any, 1)

	go func() {
		wg.Wait()
		done <- nil
	}()

	select {
	case <-ctx.Done():
		errs = append(errs, ctx.Err())
		for _, runner := range runners {
			runner.Stop()
		}
	case err := <-errCh:
		errs = append(errs, err)
		for _, runner := range runners {
			runner.Stop()
		}
	case <-done:
	}

	wg.Wait()
	pending := len(errCh)
	for i := 0; i < pending; i++ {
		errs = append(errs, <-errCh)
	}
	return errors.Join(errs...)
}
