package syncer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"harmonize/internal/audio"
	"harmonize/internal/codec"
	"harmonize/internal/config"
	"harmonize/internal/model"
	"harmonize/internal/target"
)

// Manager coordinates one sync run.
type Manager struct {
	settings  *config.Settings
	targets   *target.Targets
	executor  *Executor
	scheduler *Scheduler

	scanned   int32
	completed int32
	failed    int32

	mu       sync.Mutex
	failures []model.ConversionResult

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager for the configured source and target trees.
func NewManager(settings *config.Settings, onProgress func(ProgressEvent)) (*Manager, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	outCodec, err := model.ParseCodec(settings.Codec)
	if err != nil {
		return nil, err
	}

	targets, err := target.New(settings.SourceDir, settings.TargetDir, outCodec, settings.Exclude)
	if err != nil {
		return nil, err
	}
	encoder, err := codec.EncoderFor(outCodec)
	if err != nil {
		return nil, err
	}
	tagger, err := audio.TaggerFor(outCodec)
	if err != nil {
		return nil, err
	}

	options := settings.EncoderOptions
	if len(options) == 0 {
		options = codec.DefaultOptions(outCodec)
	}

	m := &Manager{
		settings:   settings,
		targets:    targets,
		scheduler:  NewScheduler(settings.Concurrency),
		onProgress: onProgress,
	}
	m.executor = &Executor{
		Decoder: codec.FlacDecoder{},
		Encoder: encoder,
		Tags:    tagger,
		Options: options,
		OnEvent: m.progress,
	}
	return m, nil
}

// Scan enumerates the source tree, computes every target path, and queues
// one task per file. Mapping errors (duplicate output names, target
// collisions) and failures to read the source tree are fatal: no
// conversion work starts without a complete, collision-free target set.
func (m *Manager) Scan(ctx context.Context) (int, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanning %q", m.settings.SourceDir), Level: LevelInfo})

	tasks, err := m.targets.Enumerate()
	if err != nil {
		return 0, err
	}
	for _, task := range tasks {
		m.scheduler.Submit(task)
	}

	atomic.StoreInt32(&m.scanned, int32(len(tasks)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Scanned %d items", len(tasks)), Level: LevelInfo})
	return len(tasks), nil
}

// Run executes every queued task across the bounded pool, then prunes the
// target tree. Per-task failures are collected and reported at the end;
// they never interrupt the remaining tasks, and reconciliation runs only
// after the pool is fully drained.
func (m *Manager) Run(ctx context.Context) error {
	for result := range m.scheduler.Drain(ctx, m.runTask) {
		atomic.AddInt32(&m.completed, 1)
		if result.Err != nil {
			atomic.AddInt32(&m.failed, 1)
			m.mu.Lock()
			m.failures = append(m.failures, result)
			m.mu.Unlock()
			m.progress(ProgressEvent{Message: result.Err.Error(), Level: LevelError})
		}
	}

	if err := m.targets.Sanitize(func(path string) {
		m.progress(ProgressEvent{Message: "Deleting " + path, Level: LevelInfo})
	}); err != nil {
		return fmt.Errorf("sanitize %s: %w", m.settings.TargetDir, err)
	}

	m.progress(ProgressEvent{Message: "Processing complete", Level: LevelSuccess})

	if failed := atomic.LoadInt32(&m.failed); failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, atomic.LoadInt32(&m.scanned))
	}
	return nil
}

// Progress returns current run counters. Safe to call concurrently with Run.
func (m *Manager) Progress() (scanned, completed, failed int) {
	return int(atomic.LoadInt32(&m.scanned)),
		int(atomic.LoadInt32(&m.completed)),
		int(atomic.LoadInt32(&m.failed))
}

// Failures returns the collected per-task failures.
func (m *Manager) Failures() []model.ConversionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ConversionResult(nil), m.failures...)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

func (m *Manager) runTask(ctx context.Context, task model.ConversionTask) model.ConversionResult {
	action, err := m.executor.SyncFile(ctx, task)
	if err != nil {
		err = &ConversionError{Task: task, Err: err}
	}
	return model.ConversionResult{Task: task, Action: action, Err: err}
}
