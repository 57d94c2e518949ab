package syncer

import (
	"fmt"

	"harmonize/internal/model"
)

// ConversionError is a per-task failure. It carries the originating task so
// failures can be aggregated and reported after the run; it never aborts
// other in-flight or queued tasks.
type ConversionError struct {
	Task model.ConversionTask
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Task.Source.Path, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
