package main

import (
	"context"
	"fmt"
	"os"

	"harmonize/internal/config"
	"harmonize/internal/syncer"
)

func run(ctx context.Context, settings *config.Settings, verbose, dryRun bool) error {
	manager, err := syncer.NewManager(settings, func(event syncer.ProgressEvent) {
		printEvent(event, settings.Quiet, verbose)
	})
	if err != nil {
		return err
	}

	count, err := manager.Scan(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Would process %d files (dry run)\n", count)
		return nil
	}

	runErr := manager.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if failures := manager.Failures(); len(failures) > 0 {
		fmt.Fprintln(os.Stderr, renderFailureTable(failures))
	}
	return runErr
}

func printEvent(event syncer.ProgressEvent, quiet, verbose bool) {
	switch event.Level {
	case syncer.LevelError:
		fmt.Fprintln(os.Stderr, "error: "+event.Message)
	case syncer.LevelWarning:
		fmt.Fprintln(os.Stderr, "warning: "+event.Message)
	case syncer.LevelVerbose:
		if verbose && !quiet {
			fmt.Println(event.Message)
		}
	default:
		if !quiet {
			fmt.Println(event.Message)
		}
	}
}
