package compiler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jorge-barreto/runbook/internal/ux"
	"github.com/jorge-barreto/runbook/internal/watch"
)

// Watch prepares path once, then again after every change until ctx is
// cancelled. Failed compiles are reported and do not end the loop.
func (c *Compiler) Watch(ctx context.Context, path string, debounce time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading runbook: %w", err)
	}
	w, err := watch.New(path, info.IsDir(), debounce, c.Log)
	if err != nil {
		return err
	}

	compile := func() error {
		_, err := c.Prepare(path)
		if err != nil && !errors.Is(err, ErrInvalid) {
			fmt.Fprintf(c.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		}
		ux.Watching(c.Stdout, path)
		return err
	}
	_ = compile()
	return w.Run(ctx, compile)
}
