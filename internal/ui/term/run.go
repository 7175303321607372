package term

import (
	"context"
	"fmt"
	"io"

	"breathe/internal/clock"
	"breathe/internal/core/breath"
	"breathe/internal/core/session"
	"breathe/internal/haptic"

	"go.uber.org/zap"
)

// Options configures a headless session.
type Options struct {
	Minutes int
	Out     io.Writer
	Logger  *zap.Logger
}

// Run plays one session in the terminal. It returns when the countdown
// completes or, after stopping the session, when ctx is cancelled.
func Run(ctx context.Context, options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	loop := clock.NewLoop(16)
	clk := clock.NewReal(loop.Post)
	view := NewView(options.Out)
	scheduler := breath.NewScheduler(clk, view, haptic.Nop{}, logger)
	controller := session.NewController(clk, view, scheduler, logger, options.Minutes)
	controller.OnFinish(loop.Quit)

	var startErr error
	loop.Post(func() {
		if err := controller.Start(options.Minutes); err != nil {
			startErr = err
			loop.Quit()
		}
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			logger.Info("stopping session", zap.Error(ctx.Err()))
			loop.Post(controller.Finish)
		case <-done:
		}
	}()

	if err := loop.Run(context.Background()); err != nil {
		return err
	}
	if startErr != nil {
		return fmt.Errorf("start session: %w", startErr)
	}
	return nil
}
